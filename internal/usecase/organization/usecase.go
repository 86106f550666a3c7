package organization

import (
	"context"
	"fmt"
	"strings"

	domainOrganization "coop-loan-backend/internal/domain/organization"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/pkg/apperr"
)

var ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid organization profile")

type ProfileInput struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Address     string `json:"address"`
	LogoPath    string `json:"logo_path" validate:"max=300"`
}

type ProfileDTO struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	LogoPath    string `json:"logo_path,omitempty"`
}

// Usecase manages the single profile printed on every document header.
type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Get returns an empty profile when none is configured.
func (u *Usecase) Get(ctx context.Context) (*ProfileDTO, error) {
	var p *domainOrganization.Profile
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		p, err = r.Organization.Get(ctx)
		return err
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load organization profile", err)
	}
	if p == nil {
		return &ProfileDTO{}, nil
	}
	return &ProfileDTO{CompanyName: p.CompanyName, Address: p.Address, LogoPath: p.LogoPath}, nil
}

func (u *Usecase) Save(ctx context.Context, in ProfileInput) (*ProfileDTO, error) {
	p := &domainOrganization.Profile{
		CompanyName: strings.TrimSpace(in.CompanyName),
		Address:     strings.TrimSpace(in.Address),
		LogoPath:    strings.TrimSpace(in.LogoPath),
	}
	if p.CompanyName == "" {
		return nil, fmt.Errorf("%w: company_name is required", ErrInvalidInput)
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error { return r.Organization.Save(ctx, p) })
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransaction, "save organization profile", err)
	}
	return &ProfileDTO{CompanyName: p.CompanyName, Address: p.Address, LogoPath: p.LogoPath}, nil
}
