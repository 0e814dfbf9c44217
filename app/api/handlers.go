package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/notice-filter/app/notice"
	"github.com/lysyi3m/notice-filter/app/pages"
)

func NewHandler(pageStore PageStore, assetsDir string, version string) *Handler {
	return &Handler{
		pageStore: pageStore,
		assetsDir: assetsDir,
		version:   version,
	}
}

func (h *Handler) GetPage(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	page, err := h.pageStore.GetPage(name)
	if err != nil {
		slog.Error("Page not found", "page", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("X-Page-Items", strconv.Itoa(page.Items))
	c.Header("X-Last-Updated", page.LoadedAt.Format(time.RFC3339))

	c.Data(http.StatusOK, "text/html; charset=utf-8", page.HTML)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"timestamp":    time.Now().In(time.Local).Format(time.RFC3339),
		"loaded_pages": h.pageStore.GetPageCount(),
	})
}

func (h *Handler) APIListPages(c *gin.Context) {
	all := h.pageStore.GetPages()

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		page := all[name]
		list = append(list, map[string]interface{}{
			"name":      page.Name,
			"title":     page.Settings.Title,
			"items":     page.Items,
			"dividers":  page.Dividers,
			"loaded_at": page.LoadedAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"pages": list,
		"total": len(list),
	})
}

func (h *Handler) APIGetPageCategories(c *gin.Context) {
	name := c.Param("name")

	page, err := h.pageStore.GetPage(name)
	if err != nil {
		slog.Error("Page not found", "page", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	categories := make([]gin.H, 0, len(notice.Dimensions))
	for _, d := range notice.Dimensions {
		categories = append(categories, gin.H{
			"dimension": d.Key(),
			"attribute": d.Attribute(),
			"options":   page.Categories[d.Key()],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"name":       page.Name,
		"categories": categories,
	})
}

func (h *Handler) APIReloadPage(c *gin.Context) {
	name := c.Param("name")

	page, err := h.pageStore.LoadPage(name)
	if err != nil {
		if errors.Is(err, pages.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		slog.Error("Error reloading page", "page", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload page",
			"details": err.Error(),
		})
		return
	}

	slog.Info("Page reloaded", "page", name, "items", page.Items)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Page reloaded successfully",
		"page": gin.H{
			"name":  page.Name,
			"title": page.Settings.Title,
			"items": page.Items,
		},
	})
}
