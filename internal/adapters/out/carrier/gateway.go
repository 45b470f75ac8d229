// Package carrier talks to the remote carrier service over gRPC. Requests and
// replies are google.protobuf.Struct messages, so no generated stubs are
// needed on this side.
package carrier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "carrier.v1.CarrierService"

	RegisterShipmentMethod     = "/" + ServiceName + "/RegisterShipment"
	UpdateShipmentStatusMethod = "/" + ServiceName + "/UpdateShipmentStatus"

	DefaultTimeout = 5 * time.Second
)

var ErrEmptyCarrierRef = errors.New("carrier returned an empty reference")

// Dial opens a plaintext client connection. The carrier runs inside the
// private network.
func Dial(target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// GRPCGateway implements ports.CarrierGateway.
type GRPCGateway struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

func NewGRPCGateway(conn grpc.ClientConnInterface, timeout time.Duration) *GRPCGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GRPCGateway{conn: conn, timeout: timeout}
}

// RegisterShipment hands a closed box to the carrier and returns its tracking
// reference.
func (g *GRPCGateway) RegisterShipment(ctx context.Context, shipment ports.CarrierShipment) (string, error) {
	images := make([]any, 0, len(shipment.Images))
	for _, image := range shipment.Images {
		images = append(images, image)
	}

	req, err := structpb.NewStruct(map[string]any{
		"shipment_id": shipment.ShipmentID.String(),
		"box_number":  float64(shipment.BoxNumber),
		"carrier":     shipment.Carrier,
		"sender":      shipment.Sender,
		"weight":      shipment.Weight.String(),
		"images":      images,
	})
	if err != nil {
		return "", err
	}

	resp := new(structpb.Struct)
	if err := g.invoke(ctx, RegisterShipmentMethod, req, resp); err != nil {
		return "", err
	}

	ref := resp.GetFields()["carrier_ref"].GetStringValue()
	if ref == "" {
		return "", ErrEmptyCarrierRef
	}
	return ref, nil
}

// UpdateShipmentStatus reports a status change for a registered shipment.
func (g *GRPCGateway) UpdateShipmentStatus(ctx context.Context, carrierRef string, shipmentStatus string) error {
	if carrierRef == "" {
		return errs.NewValueIsRequiredError("carrier reference")
	}

	req, err := structpb.NewStruct(map[string]any{
		"carrier_ref": carrierRef,
		"status":      shipmentStatus,
	})
	if err != nil {
		return err
	}

	return g.invoke(ctx, UpdateShipmentStatusMethod, req, new(structpb.Struct))
}

func (g *GRPCGateway) invoke(ctx context.Context, method string, req, resp *structpb.Struct) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.conn.Invoke(ctx, method, req, resp); err != nil {
		return translate(method, err)
	}
	return nil
}

// translate maps carrier status codes onto the error taxonomy. Anything not
// listed is a transport failure.
func translate(method string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("carrier %s: %w", method, err)
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return errs.NewValueIsInvalidErrorWithCause("carrier request", errors.New(st.Message()))
	case codes.NotFound:
		return errs.NewObjectNotFoundErrorWithCause("carrier shipment", method, errors.New(st.Message()))
	case codes.AlreadyExists, codes.FailedPrecondition:
		return errs.NewConflictError("carrier shipment", st.Message())
	default:
		return fmt.Errorf("carrier %s: %w", method, err)
	}
}
