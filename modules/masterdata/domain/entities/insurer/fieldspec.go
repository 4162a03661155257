package insurer

// FieldSpec describes the JSON fields an operator console renders for
// one (master kind, insurer) pair. Insurers absent from the catalog
// take free-form JSON. Nested specs (Group non-empty) serialize under
// that key in the stored payload.
type FieldSpec struct {
	Group string `json:"group,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type catalogKey struct {
	kind MasterKind
	name string
}

var fieldCatalog = map[catalogKey][]FieldSpec{
	{KindRTO, "reliance"}: {
		{Name: "stateId", Label: "State ID"},
		{Name: "regionId", Label: "Region ID"},
	},
	{KindRTO, "chola"}: {
		{Group: "2W", Name: "RTO", Label: "2W RTO"},
		{Group: "2W", Name: "NUM_STATE_CODE", Label: "2W State Code"},
		{Group: "2W", Name: "TXT_RTO_LOCATION_CODE", Label: "2W Loc Code"},
		{Group: "2W", Name: "TXT_REGISTRATION_STATE_CODE", Label: "2W Reg State"},
		{Group: "2W", Name: "TXT_RTO_LOCATION_DESC", Label: "2W Loc Desc"},
		{Group: "4W", Name: "RTO", Label: "4W RTO"},
		{Group: "4W", Name: "NUM_STATE_CODE", Label: "4W State Code"},
		{Group: "4W", Name: "TXT_RTO_LOCATION_CODE", Label: "4W Loc Code"},
		{Group: "4W", Name: "TXT_REGISTRATION_STATE_CODE", Label: "4W Reg State"},
		{Group: "4W", Name: "TXT_RTO_LOCATION_DESC", Label: "4W Loc Desc"},
	},
	{KindRTO, "tata"}: {
		{Name: "RTO", Label: "RTO"},
		{Name: "ZONE", Label: "Zone"},
		{Name: "ZONE2", Label: "Zone 2"},
		{Name: "PLACE_REG", Label: "Place Reg"},
		{Name: "PLACE_REG_NO", Label: "Place Reg No"},
		{Name: "RTO_LOCATION", Label: "Loc Code"},
		{Name: "RTO_LOCATION_NAME", Label: "Loc Name"},
	},
	{KindRTO, "icici"}: {
		{Name: "zone", Label: "Zone"},
		{Name: "cityName", Label: "City Name"},
		{Name: "cityDesc", Label: "City Desc"},
		{Name: "stateCode", Label: "State Code"},
		{Name: "state", Label: "State Name"},
	},
	{KindRTO, "iffco"}: {
		{Name: "2W", Label: "2W ID"},
		{Name: "4W", Label: "4W ID"},
		{Name: "GCV", Label: "GCV ID"},
		{Name: "MISCD", Label: "MISCD ID"},
	},
	{KindRTO, "sbi"}: {
		{Name: "RTO_Code", Label: "RTO Code"},
		{Name: "RTO_Zone", Label: "Zone"},
		{Name: "State_ID", Label: "State ID"},
		{Name: "RTO_Region", Label: "Region"},
		{Name: "Location_ID", Label: "Loc ID"},
		{Name: "RTO_Cluster", Label: "Cluster"},
		{Name: "District_Code", Label: "Dist Code"},
		{Name: "Location_Name", Label: "Loc Name"},
	},
	{KindRTO, "bajaj"}: {
		{Name: "RTO", Label: "RTO"},
		{Name: "CITY", Label: "City"},
		{Name: "ZONE", Label: "Zone"},
		{Name: "STATE", Label: "State"},
	},
	{KindRTO, "hdfc"}: {
		{Group: "v1", Name: "stateId", Label: "State ID"},
		{Group: "v1", Name: "MOTOR_2W", Label: "V1 2W"},
		{Group: "v1", Name: "MOTOR_4W", Label: "V1 4W"},
		{Group: "v2", Name: "HDFC_2W", Label: "V2 2W"},
		{Group: "v2", Name: "HDFC_4W", Label: "V2 4W"},
	},
	{KindRTO, "future"}: {
		{Name: "code", Label: "Code"},
		{Name: "zone", Label: "Zone"},
		{Name: "state", Label: "State"},
		{Name: "pincode", Label: "Pincode"},
		{Name: "longdesc", Label: "Long Desc"},
	},
	{KindRTO, "zuno"}: {
		{Name: "carZone", Label: "Car Zone"},
		{Name: "rtoZone", Label: "RTO Zone"},
		{Name: "idvCity", Label: "IDV City"},
		{Name: "stateName", Label: "State Name"},
		{Name: "clusterZone", Label: "Cluster"},
		{Name: "rtoStateCode", Label: "RTO State Code"},
		{Name: "rtoLocationName", Label: "Loc Name"},
		{Name: "rtoCityOrDistrict", Label: "City/Dist"},
	},
	{KindRTO, "kotak"}: {
		{Name: "zone", Label: "Zone"},
		{Name: "rtoCode", Label: "RTO Code"},
		{Name: "stateCode", Label: "State Code"},
		{Name: "rtoCluster", Label: "RTO Cluster"},
	},
	{KindRTO, "magma"}: {
		{Name: "TXT_REGISTRATION_ZONE", Label: "Zone"},
		{Name: "TXT_RTO_LOCATION_CODE", Label: "Loc Code"},
		{Name: "TXT_RTO_LOCATION_DESC", Label: "Loc Desc"},
	},
	{KindRTO, "united"}: {
		{Name: "TXT_RTA_DESC", Label: "RTA Desc"},
		{Name: "TXT_VEHICLE_ZONE", Label: "Zone"},
	},
	{KindRTO, "royalSundaram"}: {
		{Name: "rto", Label: "RTO"},
		{Name: "rtoCity", Label: "RTO City"},
		{Name: "rtoName", Label: "RTO Name"},
	},
	{KindRTO, "shriram"}: {
		{Name: "rtoCity", Label: "City"},
		{Name: "rtoState", Label: "State"},
		{Name: "rtoCode", Label: "Code"},
	},

	{KindMMV, "icici"}: {
		{Name: "makeId", Label: "ICICI Make ID"},
		{Name: "modelId", Label: "ICICI Model ID"},
		{Name: "carsegment", Label: "Car Segment"},
		{Name: "seatingCapacity", Label: "Seating Cap"},
	},
	{KindMMV, "reliance"}: {
		{Name: "makeId", Label: "Make ID"},
		{Name: "modelId", Label: "Model ID"},
		{Name: "makeName", Label: "Make Name"},
		{Name: "modelName", Label: "Model Name"},
		{Name: "cc", Label: "CC"},
		{Name: "fuelType", Label: "Fuel Type"},
		{Name: "seatingCapacity", Label: "Seating"},
		{Name: "caryingCapacity", Label: "Carrying"},
	},
	{KindMMV, "hdfc"}: {
		{Group: "v1", Name: "makeCode", Label: "Make Code (v1)"},
		{Group: "v1", Name: "modelCode", Label: "Model Code (v1)"},
		{Group: "v2", Name: "MAKE", Label: "Make Name"},
		{Group: "v2", Name: "MODEL", Label: "Model Name"},
		{Group: "v2", Name: "VARIANT", Label: "Variant Name"},
		{Group: "v2", Name: "CUBIC_CAPACITY", Label: "Cubic Capacity"},
		{Group: "v2", Name: "SEATING_CAPACITY", Label: "Seating"},
		{Group: "v2", Name: "CARRYING_CAPACITY", Label: "Carrying"},
		{Group: "v2", Name: "FUEL_TYPE", Label: "Fuel Type"},
		{Group: "v2", Name: "WEIGHT", Label: "Weight"},
		{Group: "v2", Name: "WHEELS", Label: "Wheels"},
		{Group: "v2", Name: "MODEL_CODE", Label: "Model Code (v2)"},
	},
	{KindMMV, "bajaj"}: {
		{Name: "VEHICLECODE", Label: "Vehicle Code"},
		{Name: "VEHICLETYPE", Label: "Vehicle Type"},
		{Name: "VEHICLEMAKECODE", Label: "Make Code"},
		{Name: "VEHICLEMAKE", Label: "Make Name"},
		{Name: "VEHICLEMODELCODE", Label: "Model Code"},
		{Name: "VEHICLEMODEL", Label: "Model Name"},
		{Name: "VEICLESUBTYPECODE", Label: "Subtype Code"},
		{Name: "VEHICLESUBTYPE", Label: "Subtype Name"},
		{Name: "FUEL", Label: "Fuel (P/D)"},
		{Name: "CUBICCAPACITY", Label: "CC"},
		{Name: "CARRYINGCAPACITY", Label: "Carrying"},
	},
	{KindMMV, "tata"}: {
		{Name: "VEHICLE_MAKE", Label: "Make Name"},
		{Name: "VEHICLE_MAKE_NO", Label: "Make No"},
		{Name: "VEHICLE_MODEL", Label: "Model Name"},
		{Name: "VEHICLE_MODEL_NO", Label: "Model No"},
		{Name: "VEHICLE_VARIANT", Label: "Variant"},
		{Name: "VEHICLE_VARIANT_NO", Label: "Variant No"},
		{Name: "SEATING_CAPACITY", Label: "Seating"},
	},
	{KindMMV, "sbi"}: {
		{Name: "MAKE_ID", Label: "Make ID"},
		{Name: "MODEL_ID", Label: "Model ID"},
		{Name: "VARIANT_ID", Label: "Variant ID"},
		{Name: "VARIANT_NAME", Label: "Variant Name"},
		{Name: "CC", Label: "CC"},
		{Name: "SEATING", Label: "Seating"},
		{Name: "CARRYING", Label: "Carrying"},
		{Name: "FUEL_TYPE", Label: "Fuel Type Code"},
		{Name: "WHEELS", Label: "Wheels"},
		{Name: "BODYSTYLE", Label: "Body Style"},
	},
	{KindMMV, "future"}: {
		{Name: "vehicleCode", Label: "Vehicle Code"},
		{Name: "make", Label: "Make"},
		{Name: "model", Label: "Model"},
		{Name: "bodyType", Label: "Body Type"},
		{Name: "fuelCode", Label: "Fuel Code"},
		{Name: "cc", Label: "CC"},
		{Name: "seatingCapacity", Label: "Seating"},
		{Name: "carryingCapacity", Label: "Carrying"},
	},
	{KindMMV, "iffco"}: {
		{Name: "makeCode", Label: "Make Code"},
		{Name: "CC", Label: "CC"},
		{Name: "seatingCapacity", Label: "Seating"},
		{Name: "manufactureFromYear", Label: "Mfg From Year"},
		{Name: "manufactureToYear", Label: "Mfg To Year"},
	},
	{KindMMV, "chola"}: {
		{Name: "VEHICLE_MODEL_CODE", Label: "Vehicle Model Code"},
		{Name: "MANUFACTURER", Label: "Manufacturer"},
		{Name: "VEHICLE_MODEL", Label: "Vehicle Model Name"},
		{Name: "CC", Label: "CC"},
	},
	{KindMMV, "kotak"}: {
		{Name: "makeCode", Label: "Make Code"},
		{Name: "modelCode", Label: "Model Code"},
		{Name: "variantCode", Label: "Variant Code"},
		{Name: "model", Label: "Model Name"},
		{Name: "variant", Label: "Variant Name"},
		{Name: "modelCluster", Label: "Cluster"},
		{Name: "modelSegment", Label: "Segment"},
		{Name: "seatingCapacity", Label: "Seating"},
	},
	{KindMMV, "acko"}: {
		{Name: "variant_id", Label: "Variant ID"},
		{Name: "make", Label: "Make"},
		{Name: "model", Label: "Model"},
		{Name: "variant", Label: "Variant"},
		{Name: "fuel_type", Label: "Fuel Type"},
		{Name: "transmissionType", Label: "Transmission"},
	},
	{KindMMV, "magma"}: {
		{Name: "MANUFACTURERCODE", Label: "Mfr Code"},
		{Name: "VEHICLEMODELCODE", Label: "Model Code"},
		{Name: "BODYTYPECODE", Label: "Body Type Code"},
		{Name: "VEHICLEBODYTYPEDESCRIPTION", Label: "Body Desc"},
		{Name: "MANUFACTURER", Label: "Manufacturer"},
		{Name: "VEHICLEMODEL", Label: "Model"},
		{Name: "TXT_FUEL", Label: "Fuel"},
		{Name: "CUBICCAPACITY", Label: "CC"},
		{Name: "SEATINGCAPACITY", Label: "Seating"},
		{Name: "CARRYINGCAPACITY", Label: "Carrying"},
		{Name: "TXT_SEGMENTTYPE", Label: "Segment"},
		{Name: "TXT_TACMAKECODE", Label: "TAC Make Code"},
	},
	{KindMMV, "zuno"}: {
		{Name: "make", Label: "Make"},
		{Name: "model", Label: "Model"},
		{Name: "variant", Label: "Variant"},
		{Name: "masterCode", Label: "Master Code"},
		{Name: "exShowroomPrice", Label: "Ex-Showroom"},
	},

	{KindPincode, "digit"}: {
		{Name: "code", Label: "Code"},
		{Name: "state", Label: "State"},
		{Name: "district", Label: "District"},
	},
	{KindPincode, "chola"}: {
		{Name: "code", Label: "Code"},
		{Name: "state", Label: "State"},
		{Name: "district", Label: "District"},
	},
	{KindPincode, "iffco"}: {
		{Name: "zone", Label: "Zone"},
		{Name: "cityCode", Label: "City Code"},
		{Name: "stateCode", Label: "State Code"},
	},
	{KindPincode, "icici"}: {
		{Name: "STATE_CODE", Label: "State Code"},
		{Name: "CITY_DISTRICT_CODE", Label: "City Dist Code"},
	},
	{KindPincode, "sbi"}: {
		{Name: "CITY", Label: "City Code"},
		{Name: "STATE", Label: "State Code"},
		{Name: "DISTRICT", Label: "District Code"},
	},
	{KindPincode, "reliance"}: {
		{Name: "cityId", Label: "City ID"},
		{Name: "stateId", Label: "State ID"},
		{Name: "cityName", Label: "City Name"},
		{Name: "stateName", Label: "State Name"},
		{Name: "districtId", Label: "Dist ID"},
		{Name: "districtName", Label: "Dist Name"},
	},
	{KindPincode, "care"}: {
		{Name: "areaCd", Label: "Area Cd"},
		{Name: "cityCd", Label: "City Cd"},
		{Name: "zoneCd", Label: "Zone Cd"},
		{Name: "stateCd", Label: "State Cd"},
		{Name: "countryCd", Label: "Country Cd"},
	},
	{KindPincode, "cigna"}: {
		{Name: "guId", Label: "GUID"},
		{Name: "zone", Label: "Zone"},
		{Name: "cityCode", Label: "City Code"},
		{Name: "stateCode", Label: "State Code"},
		{Name: "versionId", Label: "Version ID"},
		{Name: "cityDescription", Label: "City Desc"},
	},
	{KindPincode, "hdfc"}: {
		{Group: "v1", Name: "pinCode", Label: "Pin Code"},
		{Group: "v1", Name: "cityCode", Label: "City Code"},
		{Group: "v1", Name: "cityName", Label: "City Name"},
		{Group: "v1", Name: "stateCode", Label: "State Code"},
		{Group: "v1", Name: "stateName", Label: "State Name"},
	},
	{KindPincode, "magma"}: {
		{Name: "TXT_STATE", Label: "Txt State"},
		{Name: "NUM_STATE_CD", Label: "Num State Cd"},
		{Name: "TXT_CITYDISTRICT", Label: "Txt CityDist"},
		{Name: "NUM_CITYDISTRICT_CD", Label: "Num CityDist Cd"},
	},
}

// Fields returns the console field specs for one insurer on one master
// kind. Empty result means the insurer takes free-form JSON (or a bare
// scalar, see Insurer.Scalar).
func (i Insurer) Fields(kind MasterKind) []FieldSpec {
	specs := fieldCatalog[catalogKey{kind: kind, name: i.name}]
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out
}
