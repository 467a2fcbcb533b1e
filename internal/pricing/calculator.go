// Package pricing implements the quotation pricing engine: tier resolvers,
// rate lookup, and one calculator per service family. Calculators are pure
// over their inputs and the resolved rates; rounding to currency scale happens
// immediately after each multiplication so reruns are bit-for-bit identical.
package pricing

import (
	"context"
	"fmt"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

// Calculator prices service requests. The zero-dependency form (nil override
// source) resolves rates purely from the compiled default table.
type Calculator struct {
	rates *Rates
}

// NewCalculator builds a calculator over the given override rate source.
func NewCalculator(overrides OverrideSource) *Calculator {
	return &Calculator{rates: NewRates(overrides)}
}

// Calculate dispatches a serialized service payload to the calculator for its
// service type. The shipping agency path uses the quick estimate variant; the
// detailed disbursement account has its own entry point.
func (c *Calculator) Calculate(ctx context.Context, serviceType enums.ServiceType, payload []byte) (*Result, error) {
	switch serviceType {
	case enums.ServiceTypeFreightForwarding:
		req, err := DecodeLogisticsRequest(payload)
		if err != nil {
			return nil, err
		}
		return c.Logistics(ctx, req)
	case enums.ServiceTypeShippingAgency:
		req, err := DecodeAgencyRequest(payload)
		if err != nil {
			return nil, err
		}
		return c.Agency(ctx, req)
	case enums.ServiceTypeChartering:
		req, err := DecodeCharteringRequest(payload)
		if err != nil {
			return nil, err
		}
		return c.Chartering(ctx, req)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown service type %q", serviceType))
	}
}
