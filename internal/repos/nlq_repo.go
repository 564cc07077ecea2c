package repos

import (
	"github.com/gofiber/fiber/v2"
)

const nlqPath = "nlq/query"

type nlqRequest struct {
	Question string `json:"pregunta"`
}

// NLQRepo forwards free-text questions to the backend inference endpoint.
type NLQRepo struct{ api *Backend }

func NewNLQRepo(api *Backend) *NLQRepo { return &NLQRepo{api: api} }

// Query returns the plain-text answer body verbatim.
func (r *NLQRepo) Query(question string) (string, error) {
	a := fiber.Post(r.api.url(nlqPath)).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		JSON(nlqRequest{Question: question})
	body, err := r.api.do(a, fiber.MethodPost, nlqPath)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
