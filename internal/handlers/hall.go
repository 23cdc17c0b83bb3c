package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/steelhall-dev/steelhall/db"
	"github.com/steelhall-dev/steelhall/internal/authz"
	"github.com/steelhall-dev/steelhall/internal/estimator"
	"github.com/steelhall-dev/steelhall/internal/models"
	"github.com/steelhall-dev/steelhall/internal/types"
	"github.com/steelhall-dev/steelhall/internal/utils"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// HallRequest covers both create and full update. RoofSlope is a pointer so
// a zero-degree roof still passes the required check.
type HallRequest struct {
	Length     float64 `json:"length" binding:"required,gt=0"`
	Width      float64 `json:"width" binding:"required,gt=0"`
	PoleHeight float64 `json:"pole_height" binding:"required,gt=0"`
	RoofSlope  *int    `json:"roof_slope" binding:"required"`
}

type ListHallsResponse struct {
	Halls    []types.HallResponse `json:"halls"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func CreateHall(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body HallRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hall := models.Hall{
		SalesmanID: &currentUser.ID,
		Length:     body.Length,
		Width:      body.Width,
		PoleHeight: body.PoleHeight,
		RoofSlope:  *body.RoofSlope,
	}

	if err := db.DB.Create(&hall).Error; err != nil {
		log.Printf("Failed to create hall: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hall"})
		return
	}

	ctx.JSON(http.StatusCreated, hallResponse(hall))
}

func ListHalls(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, pageSize := pagination(ctx)

	query := db.DB.Model(&models.Hall{})

	if !currentUser.IsAdmin {
		query = query.Where("salesman_id = ?", currentUser.ID)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count halls: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve halls"})
		return
	}

	var halls []models.Hall

	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&halls).Error; err != nil {
		log.Printf("Failed to list halls: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve halls"})
		return
	}

	response := ListHallsResponse{
		Halls:    make([]types.HallResponse, 0, len(halls)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}

	for _, hall := range halls {
		response.Halls = append(response.Halls, hallResponse(hall))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetHall(ctx *gin.Context) {
	hall, ok := visibleHall(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, hallResponse(hall))
}

func UpdateHall(ctx *gin.Context) {
	var body HallRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hall, ok := visibleHall(ctx)

	if !ok {
		return
	}

	hall.Length = body.Length
	hall.Width = body.Width
	hall.PoleHeight = body.PoleHeight
	hall.RoofSlope = *body.RoofSlope

	if err := db.DB.Save(&hall).Error; err != nil {
		log.Printf("Failed to update hall: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hall"})
		return
	}

	ctx.JSON(http.StatusOK, hallResponse(hall))
}

func DeleteHall(ctx *gin.Context) {
	hall, ok := visibleHall(ctx)

	if !ok {
		return
	}

	// Cascade: remove the hall's usage ledger before the hall itself.
	if err := db.DB.Where("hall_id = ?", hall.ID).Delete(&models.MaterialUsage{}).Error; err != nil {
		log.Printf("Failed to delete usage entries for hall %d: %v", hall.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hall"})
		return
	}

	if err := db.DB.Delete(&hall).Error; err != nil {
		log.Printf("Failed to delete hall %d: %v", hall.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hall"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func CalculateHall(ctx *gin.Context) {
	hall, ok := visibleHall(ctx)

	if !ok {
		return
	}

	updated, err := estimator.Calculate(db.DB, hall.ID)

	if err != nil {
		if errors.Is(err, estimator.ErrHallNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
			return
		}
		log.Printf("Failed to calculate hall %d: %v", hall.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate hall"})
		return
	}

	ctx.JSON(http.StatusOK, hallResponse(*updated))
}

// visibleHall loads the hall from the :id param and enforces the access
// decision table. An existing but foreign hall is reported as 404, not 403,
// so callers cannot probe for other salesmen's project IDs.
func visibleHall(ctx *gin.Context) (models.Hall, bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Hall{}, false
	}

	var hall models.Hall

	if err := db.DB.First(&hall, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		} else {
			log.Printf("Failed to retrieve hall: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hall"})
		}
		return models.Hall{}, false
	}

	if !authz.CanAccessHall(currentUser, hall.SalesmanID) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		return models.Hall{}, false
	}

	return hall, true
}

func pagination(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

func hallResponse(hall models.Hall) types.HallResponse {
	return types.HallResponse{
		ID:              hall.ID,
		SalesmanID:      hall.SalesmanID,
		Length:          hall.Length,
		Width:           hall.Width,
		PoleHeight:      hall.PoleHeight,
		RoofSlope:       hall.RoofSlope,
		CalculatedValue: hall.CalculatedValue,
		UpdatedAt:       hall.UpdatedAt,
	}
}
