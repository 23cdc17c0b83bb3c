package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/steelhall-dev/steelhall/db"
	"github.com/steelhall-dev/steelhall/internal/authz"
	"github.com/steelhall-dev/steelhall/internal/models"
	"github.com/steelhall-dev/steelhall/internal/types"
	"github.com/steelhall-dev/steelhall/internal/utils"
	"gorm.io/gorm"
)

// CreateUsageRequest binds a new ledger entry. Quantity is a pointer so
// zero and negative corrections pass the required check.
type CreateUsageRequest struct {
	HallID     uint  `json:"hall_id" binding:"required"`
	MaterialID *uint `json:"material_id"`
	Quantity   *int  `json:"quantity" binding:"required"`
}

type UpdateUsageRequest struct {
	MaterialID *uint `json:"material_id"`
	Quantity   *int  `json:"quantity" binding:"required"`
}

func CreateUsage(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateUsageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hall models.Hall

	if err := db.DB.First(&hall, body.HallID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		} else {
			log.Printf("Failed to retrieve hall: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create usage entry"})
		}
		return
	}

	if !authz.CanAccessHall(currentUser, hall.SalesmanID) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		return
	}

	if body.MaterialID != nil {
		if ok := materialExists(ctx, *body.MaterialID); !ok {
			return
		}
	}

	entry := models.MaterialUsage{
		HallID:     hall.ID,
		MaterialID: body.MaterialID,
		Quantity:   *body.Quantity,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to create usage entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create usage entry"})
		return
	}

	ctx.JSON(http.StatusCreated, usageResponse(entry))
}

func ListUsages(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Model(&models.MaterialUsage{})

	if !currentUser.IsAdmin {
		query = query.Where("hall_id IN (?)",
			db.DB.Model(&models.Hall{}).Select("id").Where("salesman_id = ?", currentUser.ID))
	}

	if projectID := ctx.Query("project_id"); projectID != "" {
		query = query.Where("hall_id = ?", projectID)
	}

	var entries []models.MaterialUsage

	if err := query.Order("id").Find(&entries).Error; err != nil {
		log.Printf("Failed to list usage entries: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve usage entries"})
		return
	}

	response := make([]types.MaterialUsageResponse, 0, len(entries))

	for _, entry := range entries {
		response = append(response, usageResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUsage(ctx *gin.Context) {
	entry, ok := visibleUsage(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, usageResponse(entry))
}

func UpdateUsage(ctx *gin.Context) {
	var body UpdateUsageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, ok := visibleUsage(ctx)

	if !ok {
		return
	}

	if body.MaterialID != nil {
		if ok := materialExists(ctx, *body.MaterialID); !ok {
			return
		}
	}

	entry.MaterialID = body.MaterialID
	entry.Quantity = *body.Quantity

	if err := db.DB.Save(&entry).Error; err != nil {
		log.Printf("Failed to update usage entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update usage entry"})
		return
	}

	ctx.JSON(http.StatusOK, usageResponse(entry))
}

func DeleteUsage(ctx *gin.Context) {
	entry, ok := visibleUsage(ctx)

	if !ok {
		return
	}

	if err := db.DB.Delete(&entry).Error; err != nil {
		log.Printf("Failed to delete usage entry %d: %v", entry.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete usage entry"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// visibleUsage resolves the :id param to a usage entry the caller may act
// on. Visibility follows the owning hall: foreign entries read as 404.
func visibleUsage(ctx *gin.Context) (models.MaterialUsage, bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.MaterialUsage{}, false
	}

	var entry models.MaterialUsage

	if err := db.DB.First(&entry, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Usage entry not found"})
		} else {
			log.Printf("Failed to retrieve usage entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve usage entry"})
		}
		return models.MaterialUsage{}, false
	}

	var hall models.Hall

	if err := db.DB.First(&hall, entry.HallID).Error; err != nil {
		log.Printf("Failed to retrieve hall for usage entry %d: %v", entry.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve usage entry"})
		return models.MaterialUsage{}, false
	}

	if !authz.CanAccessHall(currentUser, hall.SalesmanID) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Usage entry not found"})
		return models.MaterialUsage{}, false
	}

	return entry, true
}

func materialExists(ctx *gin.Context, materialID uint) bool {
	var material models.Material

	if err := db.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Material does not exist"})
		} else {
			log.Printf("Failed to retrieve material: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	return true
}

func usageResponse(entry models.MaterialUsage) types.MaterialUsageResponse {
	return types.MaterialUsageResponse{
		ID:         entry.ID,
		HallID:     entry.HallID,
		MaterialID: entry.MaterialID,
		Quantity:   entry.Quantity,
		UpdatedAt:  entry.UpdatedAt,
	}
}
