package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/steelhall-dev/steelhall/db"
	"github.com/steelhall-dev/steelhall/internal/models"
	"github.com/steelhall-dev/steelhall/internal/types"
	"gorm.io/gorm"
)

// MaterialRequest covers create and full update. Price is a pointer so a
// free material (price 0.00) still passes the required check.
type MaterialRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

func CreateMaterial(ctx *gin.Context) {
	var body MaterialRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material := models.Material{
		Name:  body.Name,
		Price: *body.Price,
	}

	if err := db.DB.Create(&material).Error; err != nil {
		log.Printf("Failed to create material: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create material"})
		return
	}

	ctx.JSON(http.StatusCreated, materialResponse(material))
}

func ListMaterials(ctx *gin.Context) {
	var materials []models.Material

	if err := db.DB.Order("id").Find(&materials).Error; err != nil {
		log.Printf("Failed to list materials: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve materials"})
		return
	}

	response := make([]types.MaterialResponse, 0, len(materials))

	for _, material := range materials {
		response = append(response, materialResponse(material))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetMaterial(ctx *gin.Context) {
	material, ok := findMaterial(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, materialResponse(material))
}

func UpdateMaterial(ctx *gin.Context) {
	var body MaterialRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, ok := findMaterial(ctx)

	if !ok {
		return
	}

	material.Name = body.Name
	material.Price = *body.Price

	if err := db.DB.Save(&material).Error; err != nil {
		log.Printf("Failed to update material: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update material"})
		return
	}

	ctx.JSON(http.StatusOK, materialResponse(material))
}

func DeleteMaterial(ctx *gin.Context) {
	material, ok := findMaterial(ctx)

	if !ok {
		return
	}

	// Usage entries keep living with an absent material reference; they
	// simply stop contributing to estimates.
	err := db.DB.Model(&models.MaterialUsage{}).
		Where("material_id = ?", material.ID).
		Update("material_id", nil).Error

	if err != nil {
		log.Printf("Failed to detach usage entries for material %d: %v", material.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}

	if err := db.DB.Delete(&material).Error; err != nil {
		log.Printf("Failed to delete material %d: %v", material.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func findMaterial(ctx *gin.Context) (models.Material, bool) {
	var material models.Material

	if err := db.DB.First(&material, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		} else {
			log.Printf("Failed to retrieve material: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve material"})
		}
		return models.Material{}, false
	}

	return material, true
}

func materialResponse(material models.Material) types.MaterialResponse {
	return types.MaterialResponse{
		ID:        material.ID,
		Name:      material.Name,
		Price:     material.Price,
		UpdatedAt: material.UpdatedAt,
	}
}
