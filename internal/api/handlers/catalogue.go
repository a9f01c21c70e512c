package handlers

import (
	"net/http"
	"os"

	"energy-mix-sim/internal/model"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// CatalogueHandler serves source-type catalogues so front-ends can present
// the available types and their metadata.
type CatalogueHandler struct {
	// Path of the default catalogue file served when the request names none.
	DefaultPath string
}

func NewCatalogueHandler(defaultPath string) *CatalogueHandler {
	return &CatalogueHandler{DefaultPath: defaultPath}
}

// Catalogue handles GET /api/v1/catalogue.
func (h *CatalogueHandler) Catalogue(c *gin.Context) {
	path := c.Query("file")
	if path == "" {
		path = h.DefaultPath
	}
	if path == "" {
		badRequest(c, "no catalogue file configured")
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var doc struct {
		Catalogue []model.SourceType `yaml:"catalogue"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		badRequest(c, err.Error())
		return
	}
	for _, t := range doc.Catalogue {
		if err := t.Validate(); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"catalogue": doc.Catalogue})
}
