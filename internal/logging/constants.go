package logging

// Field names used in structured log output.
const (
	FieldFile       = "file_path"
	FieldFileName   = "file_name"
	FieldReportType = "report_type"
	FieldLineNumber = "line_number"
	FieldSection    = "section"
	FieldField      = "field"
	FieldValue      = "value"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldRecords    = "records"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldBatchRunID = "batch_run_id"
	FieldWorkers    = "workers"
)
