package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend reads amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Medication categories accepted by the backend.
var MedicationCategories = []string{
	"ANALGESICOS",
	"ANTIBIOTICOS",
	"ANTIINFLAMATORIOS",
	"ANTIHISTAMINICOS",
	"ANTIPIRETICOS",
	"ANTITUSIVOS",
	"LAXANTES",
	"VITAMINAS",
	"SUPLEMENTOS",
	"DERMATOLOGICOS",
	"OFTALMOLOGICOS",
	"OTROS",
}

// Medication statuses: ACTIVO | INACTIVO | DESCONTINUADO
var MedicationStatuses = []string{"ACTIVO", "INACTIVO", "DESCONTINUADO"}

// Client statuses: ACTIVO | INACTIVO | SUSPENDIDO
var ClientStatuses = []string{"ACTIVO", "INACTIVO", "SUSPENDIDO"}

type Medication struct {
	ID                   int64           `json:"id,omitempty"`
	Name                 string          `json:"nombre"`
	ActiveIngredient     string          `json:"principioActivo"`
	Presentation         string          `json:"presentacion"`
	Concentration        string          `json:"concentracion"`
	Laboratory           string          `json:"laboratorio"`
	Price                decimal.Decimal `json:"precio"`
	Stock                int             `json:"stock"`
	MinStock             int             `json:"stockMinimo"`
	ExpiresAt            Timestamp       `json:"fechaCaducidad"`
	Barcode              string          `json:"codigoBarras"`
	Description          string          `json:"descripcion"`
	Category             string          `json:"categoria"`
	Status               string          `json:"estado"`
	RequiresPrescription bool            `json:"requiereReceta"`
}

// LowStock reports whether stock has reached the reorder threshold.
func (m Medication) LowStock() bool { return m.Stock <= m.MinStock }

type Client struct {
	ID         int64     `json:"id,omitempty"`
	FirstName  string    `json:"nombre"`
	LastName   string    `json:"apellido"`
	Email      string    `json:"email"`
	Phone      string    `json:"telefono"`
	Address    string    `json:"direccion"`
	NationalID string    `json:"dni"`
	BirthDate  Timestamp `json:"fechaNacimiento"`
	Status     string    `json:"estado"`
}

func (c Client) FullName() string { return c.FirstName + " " + c.LastName }

type Sale struct {
	ID            int64            `json:"id"`
	InvoiceNumber string           `json:"numeroFactura"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	Tax           *decimal.Decimal `json:"igv"`
	Total         *decimal.Decimal `json:"total"`
	PaymentMethod string           `json:"metodoPago"`
	Status        string           `json:"estado"`
	Notes         string           `json:"observaciones"`
	SoldAt        Timestamp        `json:"fechaVenta"`
}

// QAEntry is one question/answer pair of an AI query session.
type QAEntry struct {
	Question string `db:"question"`
	Answer   string `db:"answer"`
}

// Record ids are assigned by the backend.
func (m Medication) Key() int64 { return m.ID }
func (c Client) Key() int64     { return c.ID }
func (s Sale) Key() int64       { return s.ID }

// ErrNoEntry is returned when a history index is out of range.
var ErrNoEntry = errors.New("no such history entry")
