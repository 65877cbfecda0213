package cantar

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/repository"
)

// LookupUseCase opciones de los selectores del formulario (comandas, vehículos, conductores).
type LookupUseCase struct {
	repo repository.LookupRepository
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(repo repository.LookupRepository) *LookupUseCase {
	return &LookupUseCase{repo: repo}
}

// ListOrders comandas de compra (INBOUND) o de venta (OUTBOUND).
func (uc *LookupUseCase) ListOrders(ctx context.Context, direction string, page dto.PageRequest) (*dto.OptionListResponse, error) {
	dir := entity.Direction(direction)
	if !dir.Valid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.ListOrders(ctx, dir, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OptionResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.OptionResponse{ID: o.ID, Label: o.Label()})
	}
	return &dto.OptionListResponse{Items: items, Page: page.Response()}, nil
}

// ListVehicles vehículos registrados; la etiqueta es la matrícula.
func (uc *LookupUseCase) ListVehicles(ctx context.Context, page dto.PageRequest) (*dto.OptionListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListVehicles(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OptionResponse, 0, len(list))
	for _, v := range list {
		items = append(items, dto.OptionResponse{ID: v.ID, Label: v.Plate})
	}
	return &dto.OptionListResponse{Items: items, Page: page.Response()}, nil
}

// ListDrivers conductores registrados.
func (uc *LookupUseCase) ListDrivers(ctx context.Context, page dto.PageRequest) (*dto.OptionListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListDrivers(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OptionResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.OptionResponse{ID: d.ID, Label: d.Name})
	}
	return &dto.OptionListResponse{Items: items, Page: page.Response()}, nil
}
