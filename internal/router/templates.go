package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"staywise/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// TemplateFuncs 页面模板可用的函数
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"verdictClass": utils.VerdictClass,
		"scoreClass":   utils.ScoreClass,
		"timeAgo": func(t time.Time) string {
			seconds := int(time.Since(t).Seconds())
			switch {
			case seconds < 60:
				return "just now"
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			case seconds < 2592000:
				return fmt.Sprintf("%dd ago", seconds/86400)
			}
			return t.Format("Jan 2, 2006")
		},
		"dateISO": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
	}
}

// LoadTemplates 每个页面 = layouts + partials + 页面本身
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}
	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		return append(files, view)
	}

	funcMap := TemplateFuncs()
	for _, name := range []string{"index.html", "report.html", "error.html"} {
		r.AddFromFilesFuncs(name, funcMap, assemble(templatesDir+"/views/"+name)...)
	}
	return r
}
