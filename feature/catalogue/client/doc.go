// Package client extracts baseline vehicle data from an installed game
// client.
//
// The client's vehicle definitions arrive as a JSON dump, one attribute
// tree per vehicle. Baseline maps them onto override data with file version
// 0, so that every data file takes precedence over the client. Display
// names are "#file:key" references, resolved through the client's .mo
// string tables by a Localizer.
//
// Besides names, the extracted columns cover speed, hit points, view range,
// hull and turret armor, drum guns and the penetration, damage and reload
// time of the guns. Premium shells are left out of the gun columns.
package client
