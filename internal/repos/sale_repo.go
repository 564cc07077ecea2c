package repos

import "farmacoplus/internal/domain"

// SaleRepo is read/delete only; sales are registered elsewhere.
type SaleRepo struct{ res resource[domain.Sale] }

func NewSaleRepo(api *Backend) *SaleRepo {
	return &SaleRepo{res: resource[domain.Sale]{api: api, path: "ventas"}}
}

func (r *SaleRepo) List() ([]domain.Sale, error) { return r.res.list() }

func (r *SaleRepo) Delete(id int64) error { return r.res.delete(id) }
