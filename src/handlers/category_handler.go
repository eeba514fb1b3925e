package handlers

import (
	db "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/models"
	"bookkeeping-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string  `json:"name"`
			Type        string  `json:"type"`
			ParentID    *int    `json:"parent_id"`
			Color       *string `json:"color"`
			Icon        *string `json:"icon"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || !util.ValidTransactionType(req.Type) {
			http.Error(w, "name and a valid type (income/expense) are required", http.StatusBadRequest)
			return
		}
		category := &models.Category{
			Name:        req.Name,
			Type:        req.Type,
			ParentID:    req.ParentID,
			Color:       req.Color,
			Icon:        req.Icon,
			Description: req.Description,
		}
		created, err := db.CreateCategory(r.Context(), pool, category)
		if err != nil {
			log.Printf("ERROR: Failed to create category: %v", err)
			http.Error(w, "failed to create category", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created category id %d (%s, %s)", created.ID, created.Name, created.Type)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetCategoryByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryIDStr := chi.URLParam(r, "category_id")
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid category id param: %s", categoryIDStr)
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		category, err := db.GetCategoryByID(r.Context(), pool, categoryID)
		if err != nil {
			log.Printf("ERROR: Category id %d not found: %v", categoryID, err)
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(category)
	}
}

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryType := r.URL.Query().Get("type")
		if categoryType != "" && !util.ValidTransactionType(categoryType) {
			http.Error(w, "invalid category type", http.StatusBadRequest)
			return
		}
		categories, err := db.GetAllCategories(r.Context(), pool, categoryType)
		if err != nil {
			log.Printf("ERROR: Failed to get categories: %v", err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryIDStr := chi.URLParam(r, "category_id")
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid category id param: %s", categoryIDStr)
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		existing, err := db.GetCategoryByID(r.Context(), pool, categoryID)
		if err != nil {
			log.Printf("ERROR: Category id %d not found: %v", categoryID, err)
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		var req struct {
			Name        *string `json:"name"`
			Type        *string `json:"type"`
			ParentID    *int    `json:"parent_id"`
			Color       *string `json:"color"`
			Icon        *string `json:"icon"`
			Description *string `json:"description"`
			IsActive    *bool   `json:"is_active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Type != nil {
			if !util.ValidTransactionType(*req.Type) {
				http.Error(w, "invalid category type", http.StatusBadRequest)
				return
			}
			existing.Type = *req.Type
		}
		if req.ParentID != nil {
			existing.ParentID = req.ParentID
		}
		if req.Color != nil {
			existing.Color = req.Color
		}
		if req.Icon != nil {
			existing.Icon = req.Icon
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		updated, err := db.UpdateCategory(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update category id %d: %v", categoryID, err)
			http.Error(w, "failed to update category", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated category id %d", updated.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryIDStr := chi.URLParam(r, "category_id")
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid category id param: %s", categoryIDStr)
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteCategory(r.Context(), pool, categoryID); err != nil {
			log.Printf("ERROR: Failed to delete category id %d: %v", categoryID, err)
			http.Error(w, "failed to delete category", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted category id %d", categoryID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category deleted"})
	}
}
