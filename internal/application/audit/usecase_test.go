package audit_test

import (
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/audit"
	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/infrastructure/memory"
)

func newTrail(t *testing.T) (*audit.TrailUseCase, EventBus.Bus) {
	t.Helper()
	store := memory.NewStore()
	bus := EventBus.New()
	return audit.NewTrailUseCase(memory.NewAuditEventRepository(store), bus), bus
}

func TestAppend_PersisteYPublica(t *testing.T) {
	uc, bus := newTrail(t)

	var published []events.AuditEventCreated
	require.NoError(t, bus.Subscribe(events.TopicAuditEvent, func(ev events.AuditEventCreated) {
		published = append(published, ev)
	}))

	event, err := uc.Append("op-001", entity.ActionLogin, "inicio de sesión", entity.SeverityLow)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.NotEmpty(t, event.ID)

	require.Len(t, published, 1)
	assert.Equal(t, event.ID, published[0].Event.ID)

	list, err := uc.ListByOperator("op-001", 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.ActionLogin, list.Items[0].Action)
}

func TestAppend_EntradasInvalidas(t *testing.T) {
	uc, _ := newTrail(t)

	_, err := uc.Append("", entity.ActionLogin, "sin operador", entity.SeverityLow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Append("op-001", "", "sin acción", entity.SeverityLow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// FlagAction solo admite las acciones sensibles del PDV con severidad conocida.
func TestFlagAction_ValidaAccionYSeveridad(t *testing.T) {
	uc, _ := newTrail(t)

	out, err := uc.FlagAction(dto.FlagActionRequest{
		OperatorID:  "op-001",
		Action:      entity.ActionPriceOverride,
		Description: "precio ajustado por gerente",
		Severity:    entity.SeverityMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ActionPriceOverride, out.Action)

	_, err = uc.FlagAction(dto.FlagActionRequest{
		OperatorID: "op-001",
		Action:     "REGALO", // acción desconocida
		Severity:   entity.SeverityLow,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.FlagAction(dto.FlagActionRequest{
		OperatorID: "op-001",
		Action:     entity.ActionRefund,
		Severity:   "EXTREME",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La trilla conserva el orden de creación: base del replay del motor de riesgo.
func TestListByOperator_OrdenDeCreacion(t *testing.T) {
	uc, _ := newTrail(t)

	for _, action := range []string{entity.ActionLogin, entity.ActionPriceOverride, entity.ActionRefund} {
		_, err := uc.Append("op-001", action, "", entity.SeverityLow)
		require.NoError(t, err)
	}
	_, err := uc.Append("op-002", entity.ActionLogin, "", entity.SeverityLow)
	require.NoError(t, err)

	list, err := uc.ListByOperator("op-001", 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, entity.ActionLogin, list.Items[0].Action)
	assert.Equal(t, entity.ActionPriceOverride, list.Items[1].Action)
	assert.Equal(t, entity.ActionRefund, list.Items[2].Action)
}
