package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// WelcomeRequest announces a customer on the home page.
type WelcomeRequest struct {
	Name string `json:"name" validate:"required"`
}

// NavigateRequest records a customer browsing into a catalog section.
type NavigateRequest struct {
	Name   string `json:"name"`
	Action string `json:"action" validate:"required,oneof=shop_kaptans shop_agbada"`
}

// SelectRequest picks a catalog item and variant, creating the draft.
type SelectRequest struct {
	ProductType string `json:"product_type" validate:"required,oneof=kaptan agbada"`
	ItemID      int    `json:"item_id" validate:"required,min=1"`
	Sleeve      string `json:"sleeve" validate:"omitempty,oneof=short long"`
	Name        string `json:"name"`
}

// PaymentRequest completes the customer details and opens a payment attempt.
type PaymentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Location string `json:"location" validate:"required"`
}

// PaymentSuccessRequest is the provider's success callback payload.
type PaymentSuccessRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// MeasurementsRequest carries the body measurements that finalize the order.
// Field-level validation happens in the order package so rejection messages
// name the missing measurement.
type MeasurementsRequest struct {
	Shirt       string `json:"shirt"`
	Trouser     string `json:"trouser"`
	Hand        string `json:"hand"`
	Neck        string `json:"neck"`
	Shoulder    string `json:"shoulder"`
	FabricColor string `json:"fabric_color"`
	Description string `json:"description"`
}

// bindAndValidate binds the JSON body into out and runs validation. On
// failure it writes a 400 and returns an error for the handler to
// short-circuit.
func bindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": validationErrorsToMap(err),
		})
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
