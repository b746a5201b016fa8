package dto

import "github.com/shopspring/decimal"

type ActualizarConfiguracionRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=120"`
	Direccion    *string         `json:"direccion"`
	Telefono     *string         `json:"telefono"      validate:"omitempty,max=30"`
	LogoURL      *string         `json:"logo_url"      validate:"omitempty,url"`
	TasaImpuesto decimal.Decimal `json:"tasa_impuesto" validate:"min=0,max=100"`
}

type ConfiguracionResponse struct {
	Nombre       string          `json:"nombre"`
	Direccion    *string         `json:"direccion"`
	Telefono     *string         `json:"telefono"`
	LogoURL      *string         `json:"logo_url"`
	TasaImpuesto decimal.Decimal `json:"tasa_impuesto"`
}
