package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"go-shop/models"
	"go-shop/services"
)

// ProductController handles catalog requests.
type ProductController struct {
	products services.ProductService
	validate *validator.Validate
}

// NewProductController creates a new ProductController.
func NewProductController(products services.ProductService) *ProductController {
	return &ProductController{
		products: products,
		validate: validator.New(),
	}
}

type productPayload struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category"`
}

func (p productPayload) toModel() *models.Product {
	return &models.Product{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
	}
}

// GetProducts lists the catalog.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.products.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := pc.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// CreateProduct adds a catalog entry (admin only).
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := pc.products.Create(r.Context(), payload.toModel())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct overwrites a product addressed by name (admin only).
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := pc.products.UpdateByName(r.Context(), mux.Vars(r)["name"], payload.toModel()); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product updated successfully")
}

// DeleteProduct removes a product addressed by name (admin only).
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := pc.products.DeleteByName(r.Context(), mux.Vars(r)["name"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}
