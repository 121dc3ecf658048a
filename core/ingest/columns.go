package ingest

// Column aliases recognised per logical field, in priority order. Keys are
// matched exactly as exported by the task board.
var (
	colJobName   = []string{"Task Name"}
	colTruckType = []string{"Truck Type (drop down)"}
	colPit       = []string{"Pit Location (labels)", "Pit Location (drop down)"}
	colShift     = []string{"1st/2nd (labels)"}
	colDrivers   = []string{"Drivers Assigned (labels)"}
	colDueDate   = []string{"Due Date"}
	colTime      = []string{"Time (short text)"}
	colLocation  = []string{"LOCATION (short text)", "LOCATION (location)", "Location", "I"}
	colQty       = []string{"QTY REQ'D (short text)"}
	colMaterials = []string{"Material Type (short text)", "Material Type (drop down)", "AGG. Materials (drop down)"}
	colNotes     = []string{"Additional Delivery Notes (text)"}
	colNumTrucks = []string{"Number of Trucks (number)", "L", "Number of Trucks", "# of Trucks"}
	colInterval  = []string{"Interval Between Trucks (minutes)", "Interval Between Trucks (number)", "M"}
	colShowUp    = []string{"Show-up Time Offset (minutes)", "Minutes Before Shift (SHOWUPTIME) (number)", "N"}
)
