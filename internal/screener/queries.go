package screener

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultQueries cover mainstream financial-news phrasing plus forum
// threads on the large retail boards.
var DefaultQueries = []string{
	"A股 利好 今日",
	"A股 重大合同 公告",
	"上市公司 业绩预增",
	"机构调研 热门股",
	"北向资金 买入",
	"涨停 复盘 龙头",
	"site:xueqiu.com A股 利好",
	"site:guba.eastmoney.com 重大利好",
}

type queriesFile struct {
	Queries []string `yaml:"queries"`
}

// LoadQueries reads a YAML file of the form `queries: [...]`. Blank entries
// are dropped.
func LoadQueries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "screener: read queries file %s", path)
	}

	var f queriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "screener: parse queries file %s", path)
	}

	out := make([]string, 0, len(f.Queries))
	for _, q := range f.Queries {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, eris.Errorf("screener: queries file %s has no queries", path)
	}
	return out, nil
}
