package app

import (
	"fmt"
	"strconv"

	"goremoteid/pkg/remoteid"
)

// Field is one named value of a decoded message
type Field struct {
	Name  string
	Value string
}

// Describe lists the fields of msg in wire order. Pack elements are listed
// in turn, their names prefixed with the element number.
func Describe(msg remoteid.Message) []Field {
	fields := []Field{
		{Name: "Message Type", Value: msg.Kind().String()},
		{Name: "Protocol Version", Value: strconv.Itoa(int(msg.ProtocolVersion()))},
	}

	switch p := msg.Payload().(type) {
	case remoteid.BasicID:
		fields = append(fields,
			Field{"UA Type", p.UAType.String()},
			Field{"ID Type", idType(p.UASID)},
			Field{"UAS ID", idString(p.UASID)},
		)

	case remoteid.Location:
		fields = append(fields,
			Field{"Status", p.Status.String()},
			Field{"Height Type", p.HeightType.String()},
			Field{"Track Direction", trackDirection(p.Direction)},
			Field{"Ground Speed", groundSpeed(p.Speed)},
			Field{"Vertical Speed", verticalSpeed(p.VerticalSpeed)},
			Field{"Latitude", coordinate(p.Latitude.Validity, p.Latitude.Degrees)},
			Field{"Longitude", coordinate(p.Longitude.Validity, p.Longitude.Degrees)},
			Field{"Pressure Altitude", altitude(p.PressureAltitude)},
			Field{"Geodetic Altitude", altitude(p.GeodeticAltitude)},
			Field{"Height", altitude(p.Height)},
			Field{"Horizontal Accuracy", accuracy(p.HorizontalAccuracy.Validity, p.HorizontalAccuracy.Meters(), "m")},
			Field{"Vertical Accuracy", accuracy(p.VerticalAccuracy.Validity, p.VerticalAccuracy.Meters(), "m")},
			Field{"Altitude Accuracy", accuracy(p.AltitudeAccuracy.Validity, p.AltitudeAccuracy.Meters(), "m")},
			Field{"Speed Accuracy", accuracy(p.SpeedAccuracy.Validity, p.SpeedAccuracy.MetersPerSecond(), "m/s")},
			Field{"Timestamp", locationTimestamp(p.Timestamp)},
			Field{"Timestamp Accuracy", accuracy(p.TimestampAccuracy.Validity, p.TimestampAccuracy.Seconds, "s")},
		)

	case remoteid.AuthInitial:
		fields = append(fields,
			Field{"Auth Type", p.AuthenticationType().String()},
			Field{"Page", "0"},
			Field{"Last Page Index", strconv.Itoa(int(p.LastPageIndex()))},
			Field{"Total Length", strconv.Itoa(int(p.TotalLength()))},
			Field{"Timestamp", p.Timestamp().Time().Format("2006-01-02 15:04:05 MST")},
			Field{"Data", fmt.Sprintf("%x", p.Data())},
		)

	case remoteid.AuthSubsequent:
		fields = append(fields,
			Field{"Auth Type", p.AuthenticationType().String()},
			Field{"Page", strconv.Itoa(int(p.Page()))},
			Field{"Data", fmt.Sprintf("%x", p.Data())},
		)

	case remoteid.SelfID:
		fields = append(fields,
			Field{"Description Type", p.DescriptionType.String()},
			Field{"Description", p.Text()},
		)

	case remoteid.System:
		fields = append(fields,
			Field{"Classification Type", p.ClassificationType.String()},
			Field{"Operator Location", p.OperatorLocationSource.String()},
			Field{"Operator Latitude", coordinate(p.OperatorLatitude.Validity, p.OperatorLatitude.Degrees)},
			Field{"Operator Longitude", coordinate(p.OperatorLongitude.Validity, p.OperatorLongitude.Degrees)},
			Field{"Area Count", strconv.Itoa(int(p.AreaCount))},
			Field{"Area Radius", fmt.Sprintf("%d m", p.AreaRadius)},
			Field{"Area Ceiling", altitude(p.AreaCeiling)},
			Field{"Area Floor", altitude(p.AreaFloor)},
			Field{"UA Classification", p.UAClassification.String()},
			Field{"Operator Altitude", altitude(p.OperatorAltitude)},
			Field{"Timestamp", p.Timestamp.Time().Format("2006-01-02 15:04:05 MST")},
		)

	case remoteid.OperatorID:
		fields = append(fields,
			Field{"Operator ID Type", p.Type.String()},
			Field{"Operator ID", p.Text()},
		)

	case remoteid.Pack:
		fields = append(fields, Field{"Messages", strconv.Itoa(p.NumberOfMessages())})
		for i := 0; i < p.NumberOfMessages(); i++ {
			prefix := fmt.Sprintf("[%d] ", i+1)
			element, _, err := p.Message(i)
			if err != nil {
				fields = append(fields, Field{prefix + "Error", err.Error()})
				continue
			}
			for j, f := range Describe(element) {
				if j == 1 {
					continue // Elements share the pack's version
				}
				fields = append(fields, Field{prefix + f.Name, f.Value})
			}
		}
	}

	return fields
}

func idType(id remoteid.UASID) string {
	if id == nil {
		return remoteid.IDTypeNone.String()
	}
	return id.IDType().String()
}

func idString(id remoteid.UASID) string {
	if s, ok := id.(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}

func valueOr(v remoteid.Validity, known string) string {
	if v == remoteid.Known {
		return known
	}
	return v.String()
}

func coordinate(v remoteid.Validity, degrees float64) string {
	return valueOr(v, strconv.FormatFloat(degrees, 'f', 7, 64))
}

func altitude(a remoteid.Altitude) string {
	return valueOr(a.Validity, fmt.Sprintf("%.1f m", a.Meters))
}

func groundSpeed(s remoteid.GroundSpeed) string {
	return valueOr(s.Validity, fmt.Sprintf("%.2f m/s", s.MetersPerSecond))
}

func verticalSpeed(s remoteid.VerticalSpeed) string {
	return valueOr(s.Validity, fmt.Sprintf("%.1f m/s", s.MetersPerSecond))
}

func trackDirection(d remoteid.TrackDirection) string {
	return valueOr(d.Validity, fmt.Sprintf("%d°", d.Degrees))
}

func locationTimestamp(t remoteid.LocationTimestamp) string {
	return valueOr(t.Validity, t.Duration().String())
}

// accuracy reports the bound for Known, Unknown and Reserved codes alike
func accuracy(v remoteid.Validity, bound float32, unit string) string {
	if v == remoteid.NoValue || v == remoteid.Invalid {
		return v.String()
	}
	return fmt.Sprintf("%s (< %g %s)", v, bound, unit)
}
