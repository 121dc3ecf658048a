package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/haulplan/core/model"
)

func TestNewNotice(t *testing.T) {
	a := model.Assignment{EntryID: "e1", Truck: "94", Driver: "Sam", JobName: "Route 9", TruckType: "Dump Truck"}
	e := model.ScheduleEntry{ID: "e1", JobName: "Route 9", TruckType: "Dump Truck", Date: "05/06/2024", Time: "08:00", ShowUpTime: "07:45", Location: "Main St", Pit: "SMI Pit"}
	n := NewNotice("run-1", a, e)
	assert.Equal(t, Notice{
		RunID: "run-1", EntryID: "e1", Truck: "94", Driver: "Sam", JobName: "Route 9", TruckType: "Dump Truck",
		Date: "05/06/2024", LoadTime: "08:00", ShowUpTime: "07:45", Location: "Main St", Pit: "SMI Pit",
	}, n)
}
