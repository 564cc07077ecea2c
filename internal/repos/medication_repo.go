package repos

import "farmacoplus/internal/domain"

type MedicationRepo struct{ res resource[domain.Medication] }

func NewMedicationRepo(api *Backend) *MedicationRepo {
	return &MedicationRepo{res: resource[domain.Medication]{api: api, path: "medicamentos"}}
}

// List returns medications in backend order.
func (r *MedicationRepo) List() ([]domain.Medication, error) { return r.res.list() }

func (r *MedicationRepo) Create(m domain.Medication) (domain.Medication, error) {
	return r.res.create(m)
}

func (r *MedicationRepo) Update(id int64, m domain.Medication) (domain.Medication, error) {
	return r.res.update(id, m)
}

func (r *MedicationRepo) Delete(id int64) error { return r.res.delete(id) }
