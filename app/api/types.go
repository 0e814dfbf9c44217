package api

import (
	"github.com/lysyi3m/notice-filter/app/pages"
)

type PageStore interface {
	GetPage(name string) (*pages.Page, error)
	GetPages() map[string]*pages.Page
	GetPageCount() int
	LoadPage(name string) (*pages.Page, error)
}

var _ PageStore = (*pages.Cache)(nil)

type Handler struct {
	pageStore PageStore
	assetsDir string
	version   string
}
