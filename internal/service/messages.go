package service

// User-facing messages shared across services.
const (
	msgFillAllFields       = "Please fill in all fields."
	msgRequiredFields      = "Please fill in all required fields."
	msgInvalidRole         = "Please select a valid role."
	msgLoginUnavailable    = "Login failed. Please try again later."
	msgDuplicatePRN        = "A student with this PRN is already registered."
	msgDuplicatePhone      = "This phone number is already registered."
	msgDuplicateEmployeeID = "An HOD with this employee ID is already registered."
	msgDuplicateHOD        = "An HOD is already registered for this department."
	msgDuplicateDepartment = "This department already exists!"
	msgDuplicateClass      = "This class already exists!"
	msgDuplicateDivision   = "This division already exists!"
	msgAssignClassDivision = "Please assign at least one class and one division."
	msgTeacherNotFound     = "Teacher information not found. Please check the link."
	msgMissingLink         = "Please use the attendance link provided by your teacher."
	msgLectureRequired     = "Please enter lecture number and date."
	msgAlreadyMarked       = "Attendance already marked for this lecture."
	msgNoStudentRecords    = "No attendance records found for this student."
)
