package repos

import "farmacoplus/internal/domain"

type ClientRepo struct{ res resource[domain.Client] }

func NewClientRepo(api *Backend) *ClientRepo {
	return &ClientRepo{res: resource[domain.Client]{api: api, path: "clientes"}}
}

func (r *ClientRepo) List() ([]domain.Client, error) { return r.res.list() }

func (r *ClientRepo) Create(c domain.Client) (domain.Client, error) { return r.res.create(c) }

func (r *ClientRepo) Update(id int64, c domain.Client) (domain.Client, error) {
	return r.res.update(id, c)
}

func (r *ClientRepo) Delete(id int64) error { return r.res.delete(id) }
