// Package view 以嵌入的 html/template 實作 echo.Renderer。
// 每個頁面各自與 layout.html 組合解析，頁面以 "content" 區塊提供內容。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// 頁面名稱，對應 templates/<name>.html
const (
	PageHome      = "home"
	PageAddUser   = "add_user"
	PageEditUser  = "edit_user"
	PageRegister  = "register"
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageNotFound  = "not_found"
)

var pages = []string{PageHome, PageAddUser, PageEditUser, PageRegister, PageLogin, PageDashboard, PageNotFound}

var funcs = template.FuncMap{
	"str": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
	"num": func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	},
}

// Renderer 實作 echo.Renderer
type Renderer struct {
	pages map[string]*template.Template
}

// New 解析所有頁面
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew 同 New，解析失敗時 panic
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
