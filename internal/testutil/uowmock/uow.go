package uowmock

import (
	"context"
	"errors"

	"coop-loan-backend/internal/domain/loan"
	"coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// ApplicationTxFn matches uow.UnitOfWork.WithinApplicationTx.
type ApplicationTxFn func(ctx context.Context, memberNumber string, fn func(r uow.Repos, m *member.Member, a *loan.Application) error) error

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinReadTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn ApplicationTxFn
}

// Passthrough hands repos to every callback, and m / a to application callbacks.
func Passthrough(repos uow.Repos, m *member.Member, a *loan.Application) *UoW {
	run := func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) }
	return &UoW{
		WithinTxFn:     run,
		WithinReadTxFn: run,
		WithinApplicationTxFn: func(_ context.Context, _ string, fn func(uow.Repos, *member.Member, *loan.Application) error) error {
			return fn(repos, m, a)
		},
	}
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinReadTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinReadTxFn = fn
	return m
}
func (m *UoW) WithWithinApplicationTx(fn ApplicationTxFn) *UoW {
	m.WithinApplicationTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinReadTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinReadTxFn != nil {
		return m.WithinReadTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinApplicationTx(ctx context.Context, memberNumber string, fn func(r uow.Repos, mem *member.Member, a *loan.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, memberNumber, fn)
	}
	return errUnimplemented
}
