package weather

// FahrenheitToCelsius converts whole degrees Fahrenheit to Celsius,
// truncating toward zero.
func FahrenheitToCelsius(tempF int) int {
	return (tempF - 32) * 5 / 9
}

// CelsiusToFahrenheit converts whole degrees Celsius to Fahrenheit,
// truncating toward zero.
func CelsiusToFahrenheit(tempC int) int {
	return tempC*9/5 + 32
}
