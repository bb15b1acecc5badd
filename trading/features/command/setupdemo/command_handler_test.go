package setupdemo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/ledgermock"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/setupdemo"
)

func Test_CommandHandler_Handle_SeedsDemoRecords(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity","quantity":1}`)))
	handler := setupdemo.NewCommandHandler(l)

	// act
	result, err := handler.Handle(ctx, setupdemo.BuildCommand())

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Message)

	expected := map[string]string{
		"GOLD":    `{"docType":"commodity","description":"Yellow Bars","mainExchange":"London","quantity":100,"owner":"Trader1"}`,
		"COAL":    `{"docType":"commodity","description":"Black Gold","mainExchange":"Cardiff","quantity":300,"owner":"Trader2"}`,
		"Trader1": `{"docType":"trader","firstName":"Jenny","lastName":"Jones"}`,
		"Trader2": `{"docType":"trader","firstName":"Jack","lastName":"Sock"}`,
	}
	for key, document := range expected {
		stored, err := l.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, document, string(stored), key)
	}
}

func Test_CommandHandler_Handle_StopsAtFirstFailedWrite(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	l.On("Put", mock.Anything, "GOLD", mock.Anything).Return(nil).Once()
	l.On("Put", mock.Anything, "COAL", mock.Anything).Return(errors.New("disk full")).Once()
	handler := setupdemo.NewCommandHandler(l)

	// act
	_, err := handler.Handle(context.Background(), setupdemo.BuildCommand())

	// assert
	assert.Error(t, err)
	l.AssertNotCalled(t, "Put", mock.Anything, "Trader1", mock.Anything)
}
