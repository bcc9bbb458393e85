package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/wfh-web/internal/domain/department"
	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

// HandleError maps domain and backend errors to JSON responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrInvalidStaffID):
		BadRequest(w, "Invalid staff ID", nil)
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrPermissionDenied), errors.Is(err, staff.ErrUnknownRole):
		Forbidden(w, "Permission denied")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrInvalidDate), errors.Is(err, schedule.ErrInvalidRange), errors.Is(err, schedule.ErrInvalidShift):
		BadRequest(w, err.Error(), nil)

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "WFH request not found")
	case errors.Is(err, request.ErrWithdrawalNotFound):
		NotFound(w, "Withdrawal request not found")
	case errors.Is(err, request.ErrEntryNotFound):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, request.ErrCancelNotAllowed), errors.Is(err, request.ErrAlreadyDecided):
		Conflict(w, err.Error())

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Backend errors
	case apperror.IsNetwork(err):
		BadGateway(w, "Unable to reach the WFH service")
	case apperror.IsNotFound(err):
		NotFound(w, "Resource not found")
	default:
		var se *apperror.ServerError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = se.Error()
			}
			BadGateway(w, msg)
			return
		}
		InternalServerError(w, "An unexpected error occurred")
	}
}
