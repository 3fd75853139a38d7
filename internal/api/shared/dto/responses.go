package dto

import (
	"github.com/konia/fiscal-analytics/internal/kpi"
	"github.com/konia/fiscal-analytics/internal/matrix"
	"github.com/konia/fiscal-analytics/internal/store/schema"
)

// EvolutionResponse wraps the matrix balance evolution
type EvolutionResponse struct {
	Evolucion []matrix.EvolutionPoint `json:"evolucion"`
}

// DetailListingResponse represents the paginated detail record listing
type DetailListingResponse struct {
	Total        int64            `json:"total"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	Registros    []kpi.DetailRow  `json:"registros"`
	KPIs         kpi.DetailKPIs   `json:"kpis"`
	Distribucion map[string]int64 `json:"distribucion"`
	Top10        []kpi.TopDetail  `json:"top10"`
}

// PeriodsResponse lists the periods with detail records, newest first
type PeriodsResponse struct {
	Periodos []string `json:"periodos"`
}

// TimeDimensionResponse represents a calendar entry
type TimeDimensionResponse struct {
	Periodo     string  `json:"periodo"`
	Anio        *int    `json:"anio,omitempty"`
	Mes         *int    `json:"mes,omitempty"`
	NombreMesES string  `json:"nombre_mes_es"`
	Trimestre   *int    `json:"trimestre,omitempty"`
	Semestre    *int    `json:"semestre,omitempty"`
	Etiqueta    *string `json:"etiqueta,omitempty"`
}

// MapTimeDimensionToDTO maps a calendar row, or the fallback entry when the
// period is not in the calendar
func MapTimeDimensionToDTO(periodo string, dim *schema.TimeDimension) TimeDimensionResponse {
	if dim == nil {
		return TimeDimensionResponse{Periodo: periodo, NombreMesES: periodo}
	}
	return TimeDimensionResponse{
		Periodo:     dim.Periodo,
		Anio:        dim.Anio,
		Mes:         dim.Mes,
		NombreMesES: dim.NombreMesES,
		Trimestre:   dim.Trimestre,
		Semestre:    dim.Semestre,
		Etiqueta:    dim.Etiqueta,
	}
}

// MapUserToDTO maps a user row and its numeric company id
func MapUserToDTO(user *schema.User, dbCompanyID int64) UserResponse {
	modules := []string(user.ActiveModules)
	if modules == nil {
		modules = []string{}
	}
	return UserResponse{
		Username:      user.Username,
		Role:          user.Role,
		CompanyID:     user.CompanyID,
		DBCompanyID:   dbCompanyID,
		ActiveModules: modules,
	}
}
