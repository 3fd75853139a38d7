package schema

// TimeDimension represents the dim_tiempo calendar table
type TimeDimension struct {
	Periodo     string  `gorm:"column:periodo;primaryKey;type:text" json:"periodo"`
	Anio        *int    `gorm:"column:anio" json:"anio,omitempty"`
	Mes         *int    `gorm:"column:mes" json:"mes,omitempty"`
	NombreMesES string  `gorm:"column:nombre_mes_es;type:text" json:"nombre_mes_es"`
	Trimestre   *int    `gorm:"column:trimestre" json:"trimestre,omitempty"`
	Semestre    *int    `gorm:"column:semestre" json:"semestre,omitempty"`
	Etiqueta    *string `gorm:"column:etiqueta;type:text" json:"etiqueta,omitempty"`
}

func (TimeDimension) TableName() string {
	return "dim_tiempo"
}
