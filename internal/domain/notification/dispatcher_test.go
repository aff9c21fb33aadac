package notification_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/notification"
)

func TestDispatcher_SkipsMutedPartners(t *testing.T) {
	ana := entity.NewPartner("ana", "", "")
	bea := entity.NewPartner("bea", "", "")
	d := notification.NewDispatcher(func() []*entity.Partner { return []*entity.Partner{ana, bea} })

	prod := entity.NewProduct("Café")
	b := &entity.Batch{Product: prod, Partner: ana, UnitPrice: decimal.NewFromInt(3), Quantity: 1}

	assert.True(t, d.Toggle(bea, prod), "primer toggle silencia")
	assert.Equal(t, 1, d.Dispatch(entity.NotificationBargain, b))

	got := d.Drain(ana)
	assert.Equal(t, []entity.Notification{{Type: entity.NotificationBargain, ProductID: "Café", UnitPrice: decimal.NewFromInt(3)}}, got)
	assert.Empty(t, d.Drain(bea))

	assert.False(t, d.Toggle(bea, prod), "segundo toggle reactiva")
	assert.Equal(t, 2, d.Dispatch(entity.NotificationNew, b))
}
