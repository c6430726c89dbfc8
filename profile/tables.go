package profile

func enumOf(names map[uint64]string) EnumDecoder {
	return func(raw uint64) (string, bool) {
		name, ok := names[raw]
		return name, ok
	}
}

var fileTypeEnum = enumOf(map[uint64]string{
	1: "device", 2: "settings", 3: "sport", 4: "activity", 5: "workout",
	6: "course", 7: "schedules", 9: "weight", 10: "totals", 11: "goals",
	14: "blood_pressure", 15: "monitoring_a", 20: "activity_summary",
	28: "monitoring_daily", 32: "monitoring_b", 34: "segment", 35: "segment_list",
})

var sportEnum = enumOf(map[uint64]string{
	0: "generic", 1: "running", 2: "cycling", 3: "transition", 4: "fitness_equipment",
	5: "swimming", 6: "basketball", 7: "soccer", 8: "tennis", 9: "american_football",
	10: "training", 11: "walking", 12: "cross_country_skiing", 13: "alpine_skiing",
	14: "snowboarding", 15: "rowing", 16: "mountaineering", 17: "hiking",
	254: "all",
})

var eventEnum = enumOf(map[uint64]string{
	0: "timer", 3: "workout", 4: "workout_step", 5: "power_down", 6: "power_up",
	7: "off_course", 8: "session", 9: "lap", 10: "course_point", 11: "battery",
	13: "virtual_partner_pace", 21: "recovery_hr", 23: "recovery_info",
})

var eventTypeEnum = enumOf(map[uint64]string{
	0: "start", 1: "stop", 2: "consecutive_depreciated", 3: "marker",
	4: "stop_all", 5: "begin_depreciated", 6: "end_depreciated",
	7: "end_all_depreciated", 8: "stop_disable", 9: "stop_disable_all",
})

var genderEnum = enumOf(map[uint64]string{0: "female", 1: "male"})

var deviceTypeEnum = enumOf(map[uint64]string{
	1: "antfs", 120: "heart_rate", 121: "bike_power", 122: "bike_speed_cadence",
	123: "bike_cadence", 124: "bike_speed", 125: "stride_speed_distance",
})

var targetTypeEnum = enumOf(map[uint64]string{
	0: "speed", 1: "heart_rate", 2: "open", 3: "cadence", 4: "power",
	5: "grade", 6: "resistance", 7: "power_3s", 8: "power_10s", 9: "power_30s",
})

var durationTypeEnum = enumOf(map[uint64]string{
	0: "time", 1: "distance", 2: "hr_less_than", 3: "hr_greater_than",
	4: "calories", 5: "open", 6: "repeat_until_steps_cmplt", 7: "power_less_than",
	8: "power_greater_than", 9: "training_peaks_tss", 28: "repeat_until_time",
})

var messages = map[MesgNum]MessageInfo{
	0: {Name: "file_id", Fields: map[uint8]FieldInfo{
		0: {Name: "type", Enum: fileTypeEnum},
		1: {Name: "manufacturer"},
		2: {Name: "product"},
		3: {Name: "serial_number"},
		4: {Name: "time_created", DateTime: true},
		5: {Name: "number"},
		8: {Name: "product_name"},
	}},
	49: {Name: "file_creator", Fields: map[uint8]FieldInfo{
		0: {Name: "software_version"},
		1: {Name: "hardware_version"},
	}},
	21: {Name: "event", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		0:   {Name: "event", Enum: eventEnum},
		1:   {Name: "event_type", Enum: eventTypeEnum},
		3:   {Name: "data16"},
		4:   {Name: "data"},
		7:   {Name: "event_group"},
	}},
	23: {Name: "device_info", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		0:   {Name: "device_index"},
		1:   {Name: "device_type", Enum: deviceTypeEnum},
		2:   {Name: "manufacturer"},
		3:   {Name: "serial_number"},
		4:   {Name: "product"},
		5:   {Name: "software_version", Scale: 100},
		10:  {Name: "product_name"},
	}},
	20: {Name: "record", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		0:   {Name: "position_lat", Units: "semicircles"},
		1:   {Name: "position_long", Units: "semicircles"},
		2:   {Name: "altitude", Scale: 5, Offset: 500, Units: "m"},
		3:   {Name: "heart_rate", Units: "bpm"},
		4:   {Name: "cadence", Units: "rpm"},
		5:   {Name: "distance", Scale: 100, Units: "m"},
		6:   {Name: "speed", Scale: 1000, Units: "m/s"},
		7:   {Name: "power", Units: "watts"},
		13:  {Name: "temperature", Units: "C"},
	}},
	19: {Name: "lap", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		2:   {Name: "start_time", DateTime: true},
		7:   {Name: "total_distance", Scale: 100, Units: "m"},
		8:   {Name: "total_calories", Units: "kcal"},
		9:   {Name: "avg_power", Units: "watts"},
		10:  {Name: "max_power", Units: "watts"},
	}},
	18: {Name: "session", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		2:   {Name: "start_time", DateTime: true},
		5:   {Name: "sport", Enum: sportEnum},
		6:   {Name: "sub_sport"},
		7:   {Name: "total_elapsed_time", Scale: 1000, Units: "s"},
		8:   {Name: "total_timer_time", Scale: 1000, Units: "s"},
		9:   {Name: "total_distance", Scale: 100, Units: "m"},
	}},
	34: {Name: "activity", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		0:   {Name: "total_timer_time", Scale: 1000, Units: "s"},
		1:   {Name: "num_sessions"},
		2:   {Name: "type"},
		3:   {Name: "event", Enum: eventEnum},
		4:   {Name: "event_type", Enum: eventTypeEnum},
		5:   {Name: "local_timestamp", DateTime: true},
	}},
	207: {Name: "developer_data_id", Fields: map[uint8]FieldInfo{
		FieldDevDataIndex: {Name: "developer_data_index"},
		4:                 {Name: "manufacturer_id"},
	}},
	206: {Name: "field_description", Fields: map[uint8]FieldInfo{
		FieldDevDataIndex:      {Name: "developer_data_index"},
		FieldDevFieldDefNumber: {Name: "field_definition_number"},
		FieldDevFitBaseTypeID:  {Name: "fit_base_type_id"},
		FieldDevFieldName:      {Name: "field_name"},
		FieldDevUnits:          {Name: "units"},
	}},
	26: {Name: "workout", Fields: map[uint8]FieldInfo{
		4: {Name: "wkt_name"},
		5: {Name: "sport", Enum: sportEnum},
		6: {Name: "num_valid_steps"},
	}},
	27: {Name: "workout_step", Fields: map[uint8]FieldInfo{
		0: {Name: "wkt_step_name"},
		1: {Name: "duration_type", Enum: durationTypeEnum},
		2: {Name: "duration_value"},
		3: {Name: "target_type", Enum: targetTypeEnum},
		4: {Name: "target_value"},
	}},
	3: {Name: "user_profile", Fields: map[uint8]FieldInfo{
		0: {Name: "friendly_name"},
		1: {Name: "gender", Enum: genderEnum},
		2: {Name: "age"},
	}},
	55: {Name: "monitoring", Fields: map[uint8]FieldInfo{
		253: {Name: "timestamp", DateTime: true},
		0:   {Name: "device_index"},
		1:   {Name: "calories", Units: "kcal"},
		5:   {Name: "steps"},
		33:  {Name: "active_time", Scale: 1000, Units: "s"},
	}},
	103: {Name: "monitoring_info", Fields: map[uint8]FieldInfo{
		0: {Name: "local_timestamp", DateTime: true},
	}},
	78: {Name: "hrv", Fields: map[uint8]FieldInfo{
		0: {Name: "time", Scale: 1000, Units: "s"},
	}},
	7: {Name: "zones_target", Fields: map[uint8]FieldInfo{
		1: {Name: "max_heart_rate", Units: "bpm"},
		2: {Name: "threshold_heart_rate", Units: "bpm"},
		5: {Name: "functional_threshold_power", Units: "watts"},
	}},
}
