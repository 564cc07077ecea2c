package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MedicationForm is the raw state of the add/edit medication form.
type MedicationForm struct {
	Name                 string `form:"nombre"`
	ActiveIngredient     string `form:"principioActivo"`
	Presentation         string `form:"presentacion"`
	Concentration        string `form:"concentracion"`
	Laboratory           string `form:"laboratorio"`
	Price                string `form:"precio"`
	Stock                string `form:"stock"`
	MinStock             string `form:"stockMinimo"`
	ExpiresAt            string `form:"fechaCaducidad"`
	Barcode              string `form:"codigoBarras"`
	Description          string `form:"descripcion"`
	Category             string `form:"categoria"`
	Status               string `form:"estado"`
	RequiresPrescription bool   `form:"requiereReceta"`
}

// NewMedicationForm returns the blank form with the default enum choices.
func NewMedicationForm() MedicationForm {
	return MedicationForm{Category: MedicationCategories[0], Status: MedicationStatuses[0]}
}

// MedicationFormOf prefills the edit form from a stored record.
func MedicationFormOf(m Medication) MedicationForm {
	f := MedicationForm{
		Name:                 m.Name,
		ActiveIngredient:     m.ActiveIngredient,
		Presentation:         m.Presentation,
		Concentration:        m.Concentration,
		Laboratory:           m.Laboratory,
		Price:                m.Price.String(),
		Stock:                strconv.Itoa(m.Stock),
		MinStock:             strconv.Itoa(m.MinStock),
		ExpiresAt:            m.ExpiresAt.DateTimeInput(),
		Barcode:              m.Barcode,
		Description:          m.Description,
		Category:             m.Category,
		Status:               m.Status,
		RequiresPrescription: m.RequiresPrescription,
	}
	if f.Category == "" {
		f.Category = MedicationCategories[0]
	}
	if f.Status == "" {
		f.Status = MedicationStatuses[0]
	}
	return f
}

// Record converts a validated form into the wire record.
func (f MedicationForm) Record() (Medication, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return Medication{}, fmt.Errorf("precio: %w", err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil {
		return Medication{}, fmt.Errorf("stock: %w", err)
	}
	minStock, err := strconv.Atoi(strings.TrimSpace(f.MinStock))
	if err != nil {
		return Medication{}, fmt.Errorf("stockMinimo: %w", err)
	}
	expires, err := ParseTimestamp(f.ExpiresAt)
	if err != nil {
		return Medication{}, fmt.Errorf("fechaCaducidad: %w", err)
	}
	return Medication{
		Name:                 strings.TrimSpace(f.Name),
		ActiveIngredient:     strings.TrimSpace(f.ActiveIngredient),
		Presentation:         strings.TrimSpace(f.Presentation),
		Concentration:        strings.TrimSpace(f.Concentration),
		Laboratory:           strings.TrimSpace(f.Laboratory),
		Price:                price,
		Stock:                stock,
		MinStock:             minStock,
		ExpiresAt:            expires,
		Barcode:              strings.TrimSpace(f.Barcode),
		Description:          strings.TrimSpace(f.Description),
		Category:             f.Category,
		Status:               f.Status,
		RequiresPrescription: f.RequiresPrescription,
	}, nil
}

// ClientForm is the raw state of the add/edit client form.
type ClientForm struct {
	FirstName  string `form:"nombre"`
	LastName   string `form:"apellido"`
	Email      string `form:"email"`
	Phone      string `form:"telefono"`
	Address    string `form:"direccion"`
	NationalID string `form:"dni"`
	BirthDate  string `form:"fechaNacimiento"`
	Status     string `form:"estado"`
}

func NewClientForm() ClientForm {
	return ClientForm{Status: ClientStatuses[0]}
}

func ClientFormOf(c Client) ClientForm {
	f := ClientForm{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		NationalID: c.NationalID,
		BirthDate:  c.BirthDate.DateInput(),
		Status:     c.Status,
	}
	if f.Status == "" {
		f.Status = ClientStatuses[0]
	}
	return f
}

// Record converts the form into the record sent to the backend. Like
// MedicationForm.Record it trims text fields: the backend stores values as
// sent, and validation judged the trimmed values.
func (f ClientForm) Record() (Client, error) {
	birth, err := ParseTimestamp(f.BirthDate)
	if err != nil {
		return Client{}, fmt.Errorf("fechaNacimiento: %w", err)
	}
	return Client{
		FirstName:  strings.TrimSpace(f.FirstName),
		LastName:   strings.TrimSpace(f.LastName),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		Address:    strings.TrimSpace(f.Address),
		NationalID: strings.TrimSpace(f.NationalID),
		BirthDate:  birth,
		Status:     f.Status,
	}, nil
}
