package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/models"
	"github.com/digibistro/digibistro-api/services"
	"github.com/digibistro/digibistro-api/utils"
)

// UploadMenuImage handles PUT /api/v1/menu/:item/image - uploads a PNG photo
// for a catalog item to S3 (admin only)
func UploadMenuImage(c *gin.Context) {
	itemName := c.Param("item")
	if _, ok := menuCatalog.UnitPrice(itemName); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "No such menu item",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No image file provided",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		uploadErr, ok := err.(*utils.FileUploadError)
		code := "INVALID_FILE"
		if ok {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "S3_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	db := config.GetDB()
	var existing models.MenuImage
	err = db.Where("item_name = ?", itemName).First(&existing).Error
	if err == nil {
		oldKey := existing.S3Key
		existing.S3Key = s3Key
		if err := db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to record image",
				},
			})
			return
		}
		// Best effort: the replaced object is orphaned otherwise
		_ = s3Service.DeleteFile(oldKey)
	} else {
		image := models.MenuImage{ItemName: itemName, S3Key: s3Key}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to record image",
				},
			})
			return
		}
	}

	url, err := s3Service.GetPresignedURL(s3Key)
	if err != nil {
		url = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"item_name": itemName,
			"s3_key":    s3Key,
			"image_url": url,
		},
	})
}
