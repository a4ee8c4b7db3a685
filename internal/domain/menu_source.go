package domain

import "context"

//go:generate mockgen -source=menu_source.go -destination=menu_source_mock.go -package=domain

type MenuSource interface {
	FetchMenu(ctx context.Context, cafeID string) (*MenuResponse, error)
}
