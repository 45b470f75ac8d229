package carrier_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type carrierService interface {
	register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// fakeCarrier records what it receives and answers with canned replies.
type fakeCarrier struct {
	mu         sync.Mutex
	registered []*structpb.Struct
	updated    []*structpb.Struct
	ref        string
	err        error
}

func (f *fakeCarrier) register(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, req)
	if f.err != nil {
		return nil, f.err
	}
	return structpb.NewStruct(map[string]any{"carrier_ref": f.ref})
}

func (f *fakeCarrier) update(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, req)
	if f.err != nil {
		return nil, f.err
	}
	return &structpb.Struct{}, nil
}

func unary(call func(carrierService, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
		req := new(structpb.Struct)
		if err := dec(req); err != nil {
			return nil, err
		}
		return call(srv.(carrierService), ctx, req)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: carrier.ServiceName,
	HandlerType: (*carrierService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterShipment", Handler: unary(carrierService.register)},
		{MethodName: "UpdateShipmentStatus", Handler: unary(carrierService.update)},
	},
}

func startCarrier(t *testing.T, fake *fakeCarrier) *carrier.GRPCGateway {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	server.RegisterService(&serviceDesc, fake)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return carrier.NewGRPCGateway(conn, time.Second)
}

func TestGRPCGateway_RegisterShipment(t *testing.T) {
	fake := &fakeCarrier{ref: "ARAS-1001"}
	gateway := startCarrier(t, fake)
	shipmentID := kernel.NewUUID()

	ref, err := gateway.RegisterShipment(t.Context(), ports.CarrierShipment{
		ShipmentID: shipmentID,
		BoxNumber:  14,
		Carrier:    "Aras",
		Sender:     "Istanbul hub",
		Weight:     decimal.RequireFromString("12.5"),
		Images:     []string{"https://cdn.example/a.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ARAS-1001", ref)
	require.Len(t, fake.registered, 1)
	fields := fake.registered[0].AsMap()
	assert.Equal(t, shipmentID.String(), fields["shipment_id"])
	assert.InDelta(t, 14, fields["box_number"], 0)
	assert.Equal(t, "12.5", fields["weight"])
	assert.Equal(t, []any{"https://cdn.example/a.jpg"}, fields["images"])
}

func TestGRPCGateway_RegisterShipment_EmptyReference(t *testing.T) {
	gateway := startCarrier(t, &fakeCarrier{})

	_, err := gateway.RegisterShipment(t.Context(), ports.CarrierShipment{ShipmentID: kernel.NewUUID()})

	require.ErrorIs(t, err, carrier.ErrEmptyCarrierRef)
}

func TestGRPCGateway_TranslatesStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"invalid argument", status.Error(codes.InvalidArgument, "weight missing"), errs.KindValidation},
		{"not found", status.Error(codes.NotFound, "unknown ref"), errs.KindNotFound},
		{"already exists", status.Error(codes.AlreadyExists, "box registered"), errs.KindConflict},
		{"unavailable", status.Error(codes.Unavailable, "down"), errs.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := startCarrier(t, &fakeCarrier{err: tt.err})

			err := gateway.UpdateShipmentStatus(t.Context(), "ARAS-1", "shipping")

			require.Error(t, err)
			assert.Equal(t, tt.want, errs.KindOf(err))
		})
	}
}

func TestGRPCGateway_UpdateShipmentStatus(t *testing.T) {
	fake := &fakeCarrier{}
	gateway := startCarrier(t, fake)

	require.NoError(t, gateway.UpdateShipmentStatus(t.Context(), "ARAS-7", "arrived"))
	require.Len(t, fake.updated, 1)
	assert.Equal(t, map[string]any{"carrier_ref": "ARAS-7", "status": "arrived"}, fake.updated[0].AsMap())

	err := gateway.UpdateShipmentStatus(t.Context(), "", "arrived")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
