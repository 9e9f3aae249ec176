package entity

// Company representa una organización/tenant del portal. Es la clave de partición de todo lo demás.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Currency string `json:"currency"` // ISO 4217: MXN, EUR, ARS...
	Timezone string `json:"timezone"` // IANA: America/Mexico_City...
}

// CompanyPatch campos opcionales para actualización parcial.
type CompanyPatch struct {
	Name     *string
	Country  *string
	Currency *string
	Timezone *string
}

// Apply copia en c los campos no nulos del patch.
func (p CompanyPatch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
	if p.Timezone != nil {
		c.Timezone = *p.Timezone
	}
	return c
}
