package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	PlantID        string          `json:"plant_id"`
	Number         string          `json:"number"`
	Name           string          `json:"name"`
	CapacityLitros decimal.Decimal `json:"capacity_litros"`
}

// CreatePlantRequest body para POST /api/plants.
type CreatePlantRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// CreateAssetRequest body para POST /api/assets.
type CreateAssetRequest struct {
	PlantID   string   `json:"plant_id"`
	Name      string   `json:"name"`
	UnitCodes []string `json:"unit_codes"`
	MeterType string   `json:"meter_type,omitempty"` // horometro | odometro
}

// PlantResponse representación pública de una planta.
type PlantResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// WarehouseResponse representación pública de una bodega de combustible.
type WarehouseResponse struct {
	ID               string          `json:"id"`
	PlantID          string          `json:"plant_id"`
	PlantCode        string          `json:"plant_code"`
	Number           string          `json:"number"`
	Name             string          `json:"name"`
	CapacityLitros   decimal.Decimal `json:"capacity_litros"`
	CurrentInventory decimal.Decimal `json:"current_inventory"`
}

// AssetResponse representación pública de un equipo/unidad.
type AssetResponse struct {
	ID        string   `json:"id"`
	PlantID   string   `json:"plant_id"`
	Name      string   `json:"name"`
	UnitCodes []string `json:"unit_codes"`
	MeterType string   `json:"meter_type,omitempty"`
	Active    bool     `json:"active"`
}

// NewPlantResponse arma la respuesta desde la entidad.
func NewPlantResponse(p *entity.Plant) PlantResponse {
	return PlantResponse{ID: p.ID, Code: p.Code, Name: p.Name, Location: p.Location}
}

// NewWarehouseResponse arma la respuesta desde la entidad.
func NewWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:               w.ID,
		PlantID:          w.PlantID,
		PlantCode:        w.PlantCode,
		Number:           w.Number,
		Name:             w.Name,
		CapacityLitros:   w.CapacityLitros,
		CurrentInventory: w.CurrentInventory,
	}
}

// NewAssetResponse arma la respuesta desde la entidad.
func NewAssetResponse(a *entity.Asset) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		PlantID:   a.PlantID,
		Name:      a.Name,
		UnitCodes: a.UnitCodes,
		MeterType: a.MeterType,
		Active:    a.Active,
	}
}
