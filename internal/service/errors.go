package service

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/noah-isme/dept-attendance-api/pkg/database"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isClientError(err error) bool {
	var appErr *appErrors.Error
	return errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError
}

// conflictMessages maps unique indexes to the message of the matching pre-insert check.
var conflictMessages = map[string]string{
	"students_prn_key":     msgDuplicatePRN,
	"students_phone_key":   msgDuplicatePhone,
	"hods_phone_key":       msgDuplicatePhone,
	"hods_employee_id_key": msgDuplicateEmployeeID,
	"hods_department_key":  msgDuplicateHOD,
	"departments_name_key": msgDuplicateDepartment,
}

// storageError converts a repository failure, surfacing unique violations as conflicts.
func storageError(err error, message string) error {
	if constraint, ok := database.UniqueConstraint(err); ok {
		if msg, known := conflictMessages[constraint]; known {
			return appErrors.Clone(appErrors.ErrConflict, msg)
		}
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, appErrors.ErrConflict.Message)
	}
	return appErrors.Storage(err, message)
}
