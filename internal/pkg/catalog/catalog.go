// Package catalog is the single source of truth for the mode-dependent
// vehicle-type groups and required-document checklists. Create and edit
// flows must resolve options through this package so the two can never
// drift apart.
package catalog

import "github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"

// VehicleOption is one selectable vehicle type.
type VehicleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// VehicleGroup is a labeled group of vehicle options for one transport mode.
type VehicleGroup struct {
	Label    string          `json:"label"`
	Vehicles []VehicleOption `json:"vehicles"`
}

// DocumentGroup is a labeled group of required-document names. The grouping
// is presentational only; validation treats the union as a flat checklist.
type DocumentGroup struct {
	Label     string   `json:"label"`
	Documents []string `json:"documents"`
}

var roadVehicleGroups = []VehicleGroup{
	{
		Label: "Trucks",
		Vehicles: []VehicleOption{
			{Value: "truck_3_5_open", Label: "Truck up to 3.5t (open body)"},
			{Value: "truck_3_5_closed", Label: "Truck up to 3.5t (closed body)"},
			{Value: "truck_12_open", Label: "Truck up to 12t (open body)"},
			{Value: "truck_12_closed", Label: "Truck up to 12t (closed body)"},
			{Value: "truck_crane", Label: "Truck with crane"},
		},
	},
	{
		Label: "Tractor-trailers",
		Vehicles: []VehicleOption{
			{Value: "trailer_tarpaulin", Label: "Tarpaulin trailer"},
			{Value: "trailer_box", Label: "Box trailer"},
			{Value: "trailer_refrigerated", Label: "Refrigerated trailer"},
			{Value: "trailer_flatbed", Label: "Flatbed trailer"},
			{Value: "trailer_lowbed", Label: "Lowbed trailer"},
			{Value: "trailer_tanker", Label: "Road tanker"},
			{Value: "trailer_tipper", Label: "Tipper trailer"},
			{Value: "trailer_car_carrier", Label: "Car carrier"},
		},
	},
	{
		Label: "Vans",
		Vehicles: []VehicleOption{
			{Value: "van_panel", Label: "Panel van"},
			{Value: "van_large", Label: "Large-volume van"},
		},
	},
}

var seaVehicleGroups = []VehicleGroup{
	{
		Label: "Container vessels",
		Vehicles: []VehicleOption{
			{Value: "vessel_container_feeder", Label: "Feeder container vessel"},
			{Value: "vessel_container_panamax", Label: "Panamax container vessel"},
		},
	},
	{
		Label: "Bulk and general cargo",
		Vehicles: []VehicleOption{
			{Value: "vessel_bulk_handysize", Label: "Handysize bulk carrier"},
			{Value: "vessel_bulk_capesize", Label: "Capesize bulk carrier"},
			{Value: "vessel_general_cargo", Label: "General cargo vessel"},
			{Value: "vessel_heavy_lift", Label: "Heavy-lift vessel"},
		},
	},
	{
		Label: "Tankers and ro-ro",
		Vehicles: []VehicleOption{
			{Value: "vessel_product_tanker", Label: "Product tanker"},
			{Value: "vessel_chemical_tanker", Label: "Chemical tanker"},
			{Value: "vessel_roro", Label: "Ro-ro vessel"},
			{Value: "vessel_barge", Label: "Barge"},
		},
	},
}

var airVehicleGroups = []VehicleGroup{
	{
		Label: "Cargo aircraft",
		Vehicles: []VehicleOption{
			{Value: "aircraft_standard_cargo", Label: "Standard cargo aircraft"},
			{Value: "aircraft_large_cargo", Label: "Large cargo aircraft"},
			{Value: "aircraft_charter", Label: "Charter aircraft"},
		},
	},
}

var railVehicleGroups = []VehicleGroup{
	{
		Label: "Wagon types",
		Vehicles: []VehicleOption{
			{Value: "wagon_open", Label: "Open wagon"},
			{Value: "wagon_covered", Label: "Covered wagon"},
			{Value: "wagon_container", Label: "Container wagon"},
			{Value: "wagon_tanker", Label: "Tank wagon"},
			{Value: "wagon_refrigerated", Label: "Refrigerated wagon"},
		},
	},
}

var roadDocuments = []string{
	"CMR Waybill",
	"Invoice",
	"Packing List",
	"Certificate of Origin",
	"Vehicle Registration",
	"Driver License",
	"Transport Insurance Policy",
	"ADR Certificate",
}

// Sea documents keep two presentation sub-groups: vetting/operational
// paperwork and standard shipping paperwork.
var seaDocumentGroups = []DocumentGroup{
	{
		Label: "Vetting and operational documents",
		Documents: []string{
			"Q88 Questionnaire",
			"SIRE Inspection Report",
			"Classification Certificate",
			"P&I Insurance Certificate",
			"ISM Certificate",
			"Crew List",
		},
	},
	{
		Label: "Standard shipping documents",
		Documents: []string{
			"Bill of Lading",
			"Mate's Receipt",
			"Cargo Manifest",
			"Charter Party",
			"Notice of Readiness",
			"Statement of Facts",
		},
	},
}

var airDocuments = []string{
	"Air Waybill (AWB)",
	"Commercial Invoice",
	"Export Declaration",
	"Dangerous Goods Declaration",
	"Security Declaration",
}

var railDocuments = []string{
	"CIM Consignment Note",
	"Wagon List",
	"Loading Gauge Certificate",
	"Rail Transport Insurance",
}

// VehicleGroups returns the grouped vehicle-type catalog for a transport
// mode. Multimodal and unknown modes return nil: no vehicle constraints.
func VehicleGroups(mode string) []VehicleGroup {
	switch mode {
	case constants.ModeRoad:
		return roadVehicleGroups
	case constants.ModeSea:
		return seaVehicleGroups
	case constants.ModeAir:
		return airVehicleGroups
	case constants.ModeRail:
		return railVehicleGroups
	}
	return nil
}

// DocumentGroups returns the required-document checklist for a mode with
// its presentation grouping (only sea has more than one group).
func DocumentGroups(mode string) []DocumentGroup {
	switch mode {
	case constants.ModeRoad:
		return []DocumentGroup{{Label: "Required documents", Documents: roadDocuments}}
	case constants.ModeSea:
		return seaDocumentGroups
	case constants.ModeAir:
		return []DocumentGroup{{Label: "Required documents", Documents: airDocuments}}
	case constants.ModeRail:
		return []DocumentGroup{{Label: "Required documents", Documents: railDocuments}}
	}
	return nil
}

// RequiredDocuments returns the flat checklist for a mode.
func RequiredDocuments(mode string) []string {
	var out []string
	for _, g := range DocumentGroups(mode) {
		out = append(out, g.Documents...)
	}
	return out
}

// IsValidVehicleType reports whether value belongs to the catalog for mode.
// Multimodal imposes no constraints, so any value (including empty) passes.
func IsValidVehicleType(mode, value string) bool {
	if mode == constants.ModeMultimodal {
		return true
	}
	if value == "" {
		return false
	}
	for _, g := range VehicleGroups(mode) {
		for _, v := range g.Vehicles {
			if v.Value == value {
				return true
			}
		}
	}
	return false
}

// IsValidDocument reports whether name is on the checklist for mode.
// Multimodal imposes no constraints.
func IsValidDocument(mode, name string) bool {
	if mode == constants.ModeMultimodal {
		return true
	}
	for _, d := range RequiredDocuments(mode) {
		if d == name {
			return true
		}
	}
	return false
}

// CatalogModes are the modes that carry a vehicle/document catalog.
var CatalogModes = []string{constants.ModeRoad, constants.ModeSea, constants.ModeAir, constants.ModeRail}
