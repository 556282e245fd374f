package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/models"
	"github.com/digibistro/digibistro-api/services"
)

// menuCatalog is the process-wide catalog snapshot, loaded at startup and
// read-only afterwards.
var menuCatalog = models.DefaultCatalog()

// GetCatalog returns the shared catalog snapshot.
func GetCatalog() models.Catalog {
	return menuCatalog
}

// MenuEntry is one catalog item in the menu listing
type MenuEntry struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	ImageURL  string `json:"image_url,omitempty"`
}

// GetMenu handles GET /api/v1/menu - lists the catalog with prices and
// image URLs where a photo has been uploaded
func GetMenu(c *gin.Context) {
	db := config.GetDB()

	var images []models.MenuImage
	if err := db.Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load menu images",
			},
		})
		return
	}
	imageKeys := make(map[string]string, len(images))
	for _, img := range images {
		imageKeys[img.ItemName] = img.S3Key
	}

	s3Service := services.GetS3Service()

	entries := make([]MenuEntry, 0, len(menuCatalog))
	for _, name := range menuCatalog.ItemNames() {
		price, _ := menuCatalog.UnitPrice(name)
		entry := MenuEntry{Name: name, UnitPrice: price.StringFixed(2)}

		if key, ok := imageKeys[name]; ok && s3Service != nil {
			url, err := s3Service.GetPresignedURL(key)
			if err != nil {
				// Menu should still render without the photo
				log.Printf("failed to presign image for %s: %v", name, err)
			} else {
				entry.ImageURL = url
			}
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}
