package catalog

// Kinematic and physical states.
const (
	Pose                = "Pose"
	AABB                = "AABB"
	ContactBodies       = "ContactBodies"
	Touching            = "Touching"
	VerticalAdjacency   = "VerticalAdjacency"
	HorizontalAdjacency = "HorizontalAdjacency"
	Inside              = "Inside"
	NextTo              = "NextTo"
	OnTop               = "OnTop"
	OnFloor             = "OnFloor"
	Under               = "Under"
	Attached            = "Attached"
)

// Robot-relative and room states.
const (
	InFOVOfRobot        = "InFOVOfRobot"
	InHandOfRobot       = "InHandOfRobot"
	InReachOfRobot      = "InReachOfRobot"
	InSameRoomAsRobot   = "InSameRoomAsRobot"
	ObjectsInFOVOfRobot = "ObjectsInFOVOfRobot"
	InsideRoomTypes     = "InsideRoomTypes"

	IsInBathroom    = "IsInBathroom"
	IsInBedroom     = "IsInBedroom"
	IsInCorridor    = "IsInCorridor"
	IsInDiningRoom  = "IsInDiningRoom"
	IsInKitchen     = "IsInKitchen"
	IsInLivingRoom  = "IsInLivingRoom"
	IsInStorageRoom = "IsInStorageRoom"
)

// Thermal states.
const (
	Temperature      = "Temperature"
	MaxTemperature   = "MaxTemperature"
	HeatSourceOrSink = "HeatSourceOrSink"
	Heated           = "Heated"
	Cooked           = "Cooked"
	Burnt            = "Burnt"
	Frozen           = "Frozen"
)

// Appearance, fluid and articulation states.
const (
	Open         = "Open"
	ToggledOn    = "ToggledOn"
	Sliced       = "Sliced"
	Slicer       = "Slicer"
	Soaked       = "Soaked"
	Dusty        = "Dusty"
	Stained      = "Stained"
	CleaningTool = "CleaningTool"
	WaterSource  = "WaterSource"
	WaterSink    = "WaterSink"
	Filled       = "Filled"
)

// roomTypes maps each room state to the room type it tests for.
var roomTypes = map[string]string{
	IsInBathroom:    "bathroom",
	IsInBedroom:     "bedroom",
	IsInCorridor:    "corridor",
	IsInDiningRoom:  "dining_room",
	IsInKitchen:     "kitchen",
	IsInLivingRoom:  "living_room",
	IsInStorageRoom: "storage_room",
}

// Param keys understood by the standard constructors.
const (
	ParamValue             = "value"
	ParamAmbient           = "ambient_temperature"
	ParamRate              = "rate"
	ParamCookTemperature   = "cook_temperature"
	ParamBurnTemperature   = "burn_temperature"
	ParamFreezeTemperature = "freeze_temperature"
	ParamHeatedTemperature = "heated_temperature"
	ParamSourceTemperature = "temperature"
	ParamRequiresToggledOn = "requires_toggled_on"
	ParamRequiresClosed    = "requires_closed"
)

const (
	DefaultAmbientTemperature = 23.0
	DefaultRate               = 0.5
	DefaultCookTemperature    = 70.0
	DefaultBurnTemperature    = 200.0
	DefaultFreezeTemperature  = 0.0
	DefaultHeatedTemperature  = 40.0
	DefaultSourceTemperature  = 200.0
)
