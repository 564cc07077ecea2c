package services

import (
	"time"

	"farmacoplus/internal/domain"
	"farmacoplus/internal/validate"
)

type (
	MedicationPage = EditablePage[domain.Medication, domain.MedicationForm]
	ClientPage     = EditablePage[domain.Client, domain.ClientForm]
	SalePage       = ListPage[domain.Sale]
)

type SaleStore interface {
	Lister[domain.Sale]
	Deleter
}

func NewMedicationPage(repo Repo[domain.Medication], pageSize int, ttl time.Duration) *MedicationPage {
	return NewEditablePage(repo, FormSpec[domain.Medication, domain.MedicationForm]{
		Blank:    domain.NewMedicationForm,
		Of:       domain.MedicationFormOf,
		Validate: validate.Medication,
		Record:   domain.MedicationForm.Record,
	}, Messages{
		Created: "Medicamento agregado exitosamente",
		Updated: "Medicamento actualizado exitosamente",
		Deleted: "Medicamento eliminado exitosamente",
	}, pageSize, ttl)
}

func NewClientPage(repo Repo[domain.Client], pageSize int, ttl time.Duration) *ClientPage {
	return NewEditablePage(repo, FormSpec[domain.Client, domain.ClientForm]{
		Blank:    domain.NewClientForm,
		Of:       domain.ClientFormOf,
		Validate: validate.Client,
		Record:   domain.ClientForm.Record,
	}, Messages{
		Created: "Cliente agregado exitosamente",
		Updated: "Cliente actualizado exitosamente",
		Deleted: "Cliente eliminado exitosamente",
	}, pageSize, ttl)
}

func NewSalePage(repo SaleStore, pageSize int, ttl time.Duration) *SalePage {
	return NewListPage[domain.Sale](repo, repo, Messages{
		Deleted: "Venta eliminada exitosamente",
	}, pageSize, ttl)
}
