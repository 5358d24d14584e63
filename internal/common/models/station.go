package models

// StationType enumerates the service-point roles a station can have.
type StationType string

const (
	StationDoctor         StationType = "doctor"
	StationNurse          StationType = "nurse"
	StationPharmacist     StationType = "pharmacist"
	StationLabTech        StationType = "lab-tech"
	StationCashier        StationType = "cashier"
	StationRecordsOfficer StationType = "records-officer"
	StationDHO            StationType = "dho"
	StationBHW            StationType = "bhw"
)

var stationTypes = map[StationType]bool{
	StationDoctor:         true,
	StationNurse:          true,
	StationPharmacist:     true,
	StationLabTech:        true,
	StationCashier:        true,
	StationRecordsOfficer: true,
	StationDHO:            true,
	StationBHW:            true,
}

// ValidStationType reports whether t is part of the station catalogue.
func ValidStationType(t StationType) bool {
	return stationTypes[t]
}

// Station identifies a single service point, e.g. doctor station 2.
// Numbers are positive and scoped per type.
type Station struct {
	Type   StationType `json:"station_type"`
	Number int         `json:"station_number"`
}
