package governance

import (
	"treasury/internal/domain"
)

// RegisterCharity adds a project owned by the caller and returns its id.
func (e *Engine) RegisterCharity(call Call, name, description string) (uint64, error) {
	if err := checkCaller(call); err != nil {
		return 0, err
	}
	if name == "" || description == "" {
		return 0, domain.ErrEmptyCharity
	}

	id := e.state.NextProjectID
	e.state.NextProjectID++
	e.state.CharityProjects = append(e.state.CharityProjects, &domain.CharityProject{
		ID:          id,
		Owner:       call.Caller,
		Name:        name,
		Description: description,
		Proposals:   []uint64{},
		CreatedAt:   call.Now,
	})
	return id, nil
}
