package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
)

// Authorization conditions. These are deterministic outcomes of the access
// decision tables: they propagate to the transport layer verbatim and are
// never logged as server errors.
var (
	ErrListMealPlansForbidden = errors.New("LIST_MEAL_PLANS_FORBIDDEN")
	ErrListProgramsForbidden  = errors.New("LIST_PROGRAMS_FORBIDDEN")
	ErrListMealDaysForbidden  = errors.New("LIST_MEAL_DAYS_FORBIDDEN")
	ErrListNotesForbidden     = errors.New("LIST_NOTES_FORBIDDEN")
	ErrListTasksForbidden     = errors.New("LIST_TASKS_FORBIDDEN")

	ErrGetMealPlanForbidden    = errors.New("GET_MEAL_PLAN_FORBIDDEN")
	ErrDeleteMealPlanForbidden = errors.New("DELETE_MEAL_PLAN_FORBIDDEN")
	ErrGetProgramForbidden     = errors.New("GET_PROGRAM_FORBIDDEN")
	ErrDeleteProgramForbidden  = errors.New("DELETE_PROGRAM_FORBIDDEN")
	ErrDeleteMealDayForbidden  = errors.New("DELETE_MEAL_DAY_FORBIDDEN")
	ErrDeleteNoteForbidden     = errors.New("DELETE_NOTE_FORBIDDEN")
	ErrDeleteTaskForbidden     = errors.New("DELETE_TASK_FORBIDDEN")
	ErrGetDailyReportForbidden = errors.New("GET_DAILY_REPORT_FORBIDDEN")
	ErrManageLinkForbidden     = errors.New("MANAGE_LINK_FORBIDDEN")
)

// Generic failure kinds. Infrastructure errors are logged once with the
// "<UsecaseName>#execute => <message>" format and re-thrown as one of these so
// the transport layer returns a generic error instead of leaking internals.
var (
	ErrListMealPlansFailed = errors.New("LIST_MEAL_PLANS_FAILED")
	ErrListProgramsFailed  = errors.New("LIST_PROGRAMS_FAILED")
	ErrListMealDaysFailed  = errors.New("LIST_MEAL_DAYS_FAILED")
	ErrListNotesFailed     = errors.New("LIST_NOTES_FAILED")
	ErrListTasksFailed     = errors.New("LIST_TASKS_FAILED")

	ErrGetMealPlanFailed      = errors.New("GET_MEAL_PLAN_FAILED")
	ErrDeleteMealPlanFailed   = errors.New("DELETE_MEAL_PLAN_FAILED")
	ErrGetProgramFailed       = errors.New("GET_PROGRAM_FAILED")
	ErrDeleteProgramFailed    = errors.New("DELETE_PROGRAM_FAILED")
	ErrUpdateProgramRecFailed = errors.New("UPDATE_PROGRAM_RECORD_FAILED")
	ErrDeleteMealDayFailed    = errors.New("DELETE_MEAL_DAY_FAILED")
	ErrDeleteNoteFailed       = errors.New("DELETE_NOTE_FAILED")
	ErrDeleteTaskFailed       = errors.New("DELETE_TASK_FAILED")
	ErrGetDailyReportFailed   = errors.New("GET_DAILY_REPORT_FAILED")
	ErrManageLinkFailed       = errors.New("MANAGE_LINK_FAILED")
	ErrSoftDeleteAthleteFailed = errors.New("SOFT_DELETE_ATHLETE_INFO_FAILED")
)
