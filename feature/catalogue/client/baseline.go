package client

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/utils"
	"vehicle-catalogue/core/warn"
)

// Author of every property extracted from the client.
const Author = "Wargaming"

var clientCountries = map[string]override.Country{
	"ussr":    override.CountryUSSR,
	"germany": override.CountryGermany,
	"usa":     override.CountryUSA,
	"france":  override.CountryFrance,
	"china":   override.CountryChina,
	"uk":      override.CountryUK,
	"japan":   override.CountryJapan,
	"czech":   override.CountryCzech,
	"sweden":  override.CountrySweden,
	"poland":  override.CountryPoland,
	"italy":   override.CountryItaly,
}

// classTags are checked in order; the first tag present wins.
var classTags = []struct {
	tag   string
	class override.Class
}{
	{"lightTank", override.ClassLight},
	{"mediumTank", override.ClassMedium},
	{"heavyTank", override.ClassHeavy},
	{"SPG", override.ClassArtillery},
	{"AT-SPG", override.ClassDestroyer},
}

type clientColumn struct {
	id           override.PropertyID
	descriptions map[string]string
	value        func(v *vehicle) (string, bool)
}

var clientColumns = []clientColumn{
	{
		id: override.PropertyID{FileID: "NameFull", Author: Author},
		descriptions: map[string]string{
			"ru": "Полные названия танков, оригинальные – как в игре.",
			"en": "Full tank names, original – like in the game.",
		},
		value: func(v *vehicle) (string, bool) { return v.fullName, v.fullName != "" },
	},
	{
		id: override.PropertyID{FileID: "NameShort", Author: Author},
		descriptions: map[string]string{
			"ru": "Короткие названия танков, оригинальные – как в игре.",
			"en": "Short tank names, original – like in the game.",
		},
		value: func(v *vehicle) (string, bool) { return v.shortName, v.shortName != "" },
	},
	{
		id: override.PropertyID{FileID: "Speed", ColumnID: "Forward", Author: Author},
		descriptions: map[string]string{
			"ru": "Максимальная скорость вперёд.",
			"en": "Maximum forward speed.",
		},
		value: func(v *vehicle) (string, bool) { return floatValue(v.speedForward) },
	},
	{
		id: override.PropertyID{FileID: "Speed", ColumnID: "Reverse", Author: Author},
		descriptions: map[string]string{
			"ru": "Максимальная скорость назад.",
			"en": "Maximum reverse speed.",
		},
		value: func(v *vehicle) (string, bool) { return floatValue(v.speedReverse) },
	},
	{
		id: override.PropertyID{FileID: "Armor", ColumnID: "Hull", Author: Author},
		descriptions: map[string]string{
			"ru": "Бронирование корпуса (перед, бока, зад).",
			"en": "Hull armor thickness (front, sides, rear).",
		},
		value: func(v *vehicle) (string, bool) {
			if v.hullArmor == nil {
				return "", false
			}
			var align *armor
			if v.topTurret != nil {
				align = v.topTurret.armor
			}
			return formatArmor(v.hullArmor, align), true
		},
	},
	{
		id: override.PropertyID{FileID: "Armor", ColumnID: "Turret", Author: Author},
		descriptions: map[string]string{
			"ru": "Бронирование топ башни (перед, бока, зад).",
			"en": "Top turret armor thickness (front, sides, rear).",
		},
		value: func(v *vehicle) (string, bool) {
			if v.topTurret == nil || !v.topTurret.rotates || v.topTurret.armor == nil {
				return "", false
			}
			value := formatArmor(v.topTurret.armor, v.hullArmor)
			return value, strings.ReplaceAll(value, " ", "") != "000"
		},
	},
	{
		id: override.PropertyID{FileID: "HitPoints", ColumnID: "Tank", Author: Author},
		descriptions: map[string]string{
			"ru": "Прочность танка с топ башней.",
			"en": "Tank hit points with the top turret.",
		},
		value: func(v *vehicle) (string, bool) {
			if v.hullHealth == nil || v.topTurret == nil {
				return "", false
			}
			return strconv.Itoa(*v.hullHealth + v.topTurret.health), true
		},
	},
	{
		id: override.PropertyID{FileID: "Visibility", ColumnID: "TopTurretBase", Author: Author},
		descriptions: map[string]string{
			"ru": "Базовый обзор из топ башни.",
			"en": "Base visibility with top turret.",
		},
		value: func(v *vehicle) (string, bool) {
			if v.topTurret == nil || v.topTurret.vision == nil {
				return "", false
			}
			return utils.FormatFloat(math.RoundToEven(*v.topTurret.vision)), true
		},
	},
	{
		id: override.PropertyID{FileID: "HasTurret", Author: Author},
		descriptions: map[string]string{
			"ru": "Содержит \"*\" для танков, имеющих вращающуюся башню.",
			"en": "Contains \"*\" for every tank which has a rotating turret.",
		},
		value: func(v *vehicle) (string, bool) {
			return "*", v.topTurret != nil && v.topTurret.rotates
		},
	},
	{
		id: override.PropertyID{FileID: "HasDrum", ColumnID: "AnyGun", Author: Author},
		descriptions: map[string]string{
			"ru": "Содержит \"*\" для танков, имеющих доступ к пушке с барабаном.",
			"en": "Contains \"*\" for tanks which have access to a gun with a drum.",
		},
		value: func(v *vehicle) (string, bool) {
			return "*", slices.ContainsFunc(v.guns(), func(g *gun) bool { return g.drum })
		},
	},
	{
		id: override.PropertyID{FileID: "HasDrum", ColumnID: "TopGun", Author: Author},
		descriptions: map[string]string{
			"ru": "Содержит \"*\" для танков, чья топовая пушка имеет барабан.",
			"en": "Contains \"*\" for tanks whose top gun has a drum.",
		},
		value: func(v *vehicle) (string, bool) {
			top := v.topGun()
			return "*", top != nil && top.drum
		},
	},
	{
		id: override.PropertyID{FileID: "Guns", ColumnID: "MaxPenetration", Author: Author},
		descriptions: map[string]string{
			"ru": "Пробитие лучшей пушкой/снарядом (кроме голды).",
			"en": "Penetration using the best gun/shell (except premium shells).",
		},
		value: func(v *vehicle) (string, bool) {
			best := v.mostPenetrating()
			if best == nil {
				return "", false
			}
			return utils.FormatFloat(best.penetration), true
		},
	},
	{
		id: override.PropertyID{FileID: "Guns", ColumnID: "MaxDamage", Author: Author},
		descriptions: map[string]string{
			"ru": "Урон лучшей пушкой/снарядом (кроме голды).",
			"en": "Damage using the best gun/shell (except premium shells).",
		},
		value: func(v *vehicle) (string, bool) {
			found := false
			maxDamage := 0
			for _, sh := range v.regularShells() {
				if !found || sh.damage > maxDamage {
					maxDamage, found = sh.damage, true
				}
			}
			return strconv.Itoa(maxDamage), found
		},
	},
	{
		id: override.PropertyID{FileID: "Guns", ColumnID: "MaxPenetrationDamage", Author: Author},
		descriptions: map[string]string{
			"ru": "Урон пушкой/снарядом с лучшим пробитием (кроме голды).",
			"en": "Damage using the most penetrating gun/shell (except premium shells).",
		},
		value: func(v *vehicle) (string, bool) {
			best := v.mostPenetrating()
			if best == nil {
				return "", false
			}
			return strconv.Itoa(best.damage), true
		},
	},
	{
		id: override.PropertyID{FileID: "Guns", ColumnID: "TopGunReloadTime", Author: Author},
		descriptions: map[string]string{
			"ru": "Время перезарядки топового орудия.",
			"en": "Top gun reload time.",
		},
		value: func(v *vehicle) (string, bool) {
			top := v.topGun()
			if top == nil || top.reload == nil {
				return "", false
			}
			return utils.FormatFloat(*top.reload), true
		},
	},
}

// armor is a front, sides, rear thickness triple.
type armor [3]float64

type shell struct {
	damage      int
	penetration float64
	gold        bool
}

type gun struct {
	level  int
	price  int
	reload *float64
	drum   bool
	shells []shell
}

type turret struct {
	level   int
	price   int
	health  int
	vision  *float64
	armor   *armor
	rotates bool
	guns    []*gun
}

type vehicle struct {
	id           string
	country      override.Country
	class        override.Class
	category     override.Category
	tier         int
	fullName     string
	shortName    string
	speedForward *float64
	speedReverse *float64
	hullHealth   *int
	hullArmor    *armor
	turrets      []*turret
	topTurret    *turret
}

// guns returns the guns of every turret.
func (v *vehicle) guns() []*gun {
	var out []*gun
	for _, t := range v.turrets {
		out = append(out, t.guns...)
	}
	return out
}

// topGun picks the top turret's gun with the highest level, then price.
// Later guns win ties.
func (v *vehicle) topGun() *gun {
	if v.topTurret == nil {
		return nil
	}
	var best *gun
	for _, g := range v.topTurret.guns {
		if best == nil || cmp.Or(cmp.Compare(g.level, best.level), cmp.Compare(g.price, best.price)) >= 0 {
			best = g
		}
	}
	return best
}

// regularShells returns the shells of every gun that are not bought for
// gold.
func (v *vehicle) regularShells() []shell {
	var out []shell
	for _, g := range v.guns() {
		for _, sh := range g.shells {
			if !sh.gold {
				out = append(out, sh)
			}
		}
	}
	return out
}

// mostPenetrating returns the first regular shell with the highest
// penetration.
func (v *vehicle) mostPenetrating() *shell {
	var best *shell
	for _, sh := range v.regularShells() {
		if best == nil || sh.penetration > best.penetration {
			best = &sh
		}
	}
	return best
}

// Baseline converts the client's vehicles into the lowest-precedence
// override data: a built-in file and one column per extracted property, all
// with file version 0 and versioned at gameVersion. Vehicles with an
// unknown country or class are reported to w and skipped.
func Baseline(raw []RawVehicle, names Resolver, gameVersion int, w *warn.List) (override.BuiltinFile, []override.ExtraColumn) {
	version := override.At(gameVersion)
	builtin := override.BuiltinFile{
		Name:        "game client",
		FileVersion: override.ClientFileVersion,
	}

	var vehicles []*vehicle
	for _, r := range raw {
		v, ok := parseVehicle(r, names, w)
		if !ok {
			continue
		}
		vehicles = append(vehicles, v)
	}
	slices.SortFunc(vehicles, func(a, b *vehicle) int { return cmp.Compare(a.id, b.id) })

	for _, v := range vehicles {
		builtin.Rows = append(builtin.Rows, override.BuiltinOverride{
			Entity:   v.id,
			Country:  &v.country,
			Tier:     &v.tier,
			Class:    &v.class,
			Category: &v.category,
			Version:  version,
		})
	}

	columns := make([]override.ExtraColumn, 0, len(clientColumns))
	for _, def := range clientColumns {
		col := override.ExtraColumn{
			Name:         "game client",
			FileVersion:  override.ClientFileVersion,
			Property:     def.id,
			Descriptions: maps.Clone(def.descriptions),
		}
		for _, v := range vehicles {
			if value, ok := def.value(v); ok {
				col.Rows = append(col.Rows, override.ExtraOverride{Entity: v.id, Value: value, Version: version})
			}
		}
		columns = append(columns, col)
	}
	return builtin, columns
}

func parseVehicle(r RawVehicle, names Resolver, w *warn.List) (*vehicle, bool) {
	rawID, _ := utils.ToString(r["id"])
	countryName, _ := utils.ToString(r["country"])
	if rawID == "" {
		w.Add("Skipped a vehicle in game data because it has no id.")
		return nil, false
	}

	country, ok := clientCountries[countryName]
	if !ok {
		w.Add("Unknown country in game data: " + countryName)
		return nil, false
	}

	tags := parseTags(r["tags"])
	class, ok := classOf(tags)
	if !ok {
		w.Add("Unknown tank class in game data; tags: " + strings.Join(tags, ", "))
		return nil, false
	}

	tier, ok := utils.ToInt(r["level"])
	if !ok || tier < 1 || tier > override.MaxTier {
		w.Addf("Skipped %q because its tier in game data is not valid.", countryName+"-"+rawID)
		return nil, false
	}

	v := &vehicle{
		id:       countryName + "-" + rawID,
		country:  country,
		class:    class,
		tier:     tier,
		category: categoryOf(r, tags),
	}

	if ref, ok := utils.ToString(r["userString"]); ok {
		v.fullName = resolve(names, ref)
	}
	v.shortName = v.fullName
	if ref, ok := utils.ToString(r["shortUserString"]); ok {
		v.shortName = resolve(names, ref)
	}

	v.speedForward = lookupFloat(r, "speedLimits", "forward")
	v.speedReverse = lookupFloat(r, "speedLimits", "backward")
	if hp := lookupFloat(r, "hull", "maxHealth"); hp != nil {
		n := int(*hp)
		v.hullHealth = &n
	}
	v.hullArmor = parseArmor(utils.Lookup(r, "hull", "armor"))
	v.turrets = parseTurrets(r["turrets"])
	v.topTurret = pickTopTurret(v.turrets)
	return v, true
}

func resolve(names Resolver, ref string) string {
	if names == nil {
		return ref
	}
	return names.Resolve(ref)
}

// parseTags splits the tag string on line breaks or spaces, whichever
// yields more tags.
func parseTags(val any) []string {
	s, _ := utils.ToString(val)
	byLine := fieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' })
	bySpace := fieldsFunc(s, func(r rune) bool { return r == ' ' })
	if len(byLine) > len(bySpace) {
		return byLine
	}
	return bySpace
}

func fieldsFunc(s string, sep func(rune) bool) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, sep) {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func classOf(tags []string) (override.Class, bool) {
	for _, ct := range classTags {
		if slices.Contains(tags, ct.tag) {
			return ct.class, true
		}
	}
	return "", false
}

// categoryOf: vehicles not in the shop are special, vehicles priced in gold
// are premium.
func categoryOf(r RawVehicle, tags []string) override.Category {
	if utils.ToBool(r["notInShop"]) || slices.Contains(tags, "notInShop") {
		return override.CategorySpecial
	}
	if isGoldPrice(r["price"]) {
		return override.CategoryPremium
	}
	return override.CategoryNormal
}

func lookupFloat(tree map[string]any, keys ...string) *float64 {
	val, ok := utils.Lookup(tree, keys...)
	if !ok {
		return nil
	}
	f, ok := utils.ToFloat(val)
	if !ok {
		return nil
	}
	return &f
}

func floatValue(f *float64) (string, bool) {
	if f == nil {
		return "", false
	}
	return utils.FormatFloat(*f), true
}

func parseTurrets(val any) []*turret {
	list, ok := val.([]any)
	if !ok {
		return nil
	}
	var out []*turret
	for _, item := range list {
		if tree, ok := item.(map[string]any); ok {
			out = append(out, parseTurret(tree))
		}
	}
	return out
}

// pickTopTurret picks the turret with the highest level, then price, then
// gun count. Later turrets win ties.
func pickTopTurret(turrets []*turret) *turret {
	var best *turret
	for _, t := range turrets {
		if best == nil || compareTurrets(t, best) >= 0 {
			best = t
		}
	}
	return best
}

func compareTurrets(a, b *turret) int {
	return cmp.Or(
		cmp.Compare(a.level, b.level),
		cmp.Compare(a.price, b.price),
		cmp.Compare(len(a.guns), len(b.guns)),
	)
}

func parseTurret(tree map[string]any) *turret {
	t := &turret{}
	t.level, _ = utils.ToInt(tree["level"])
	t.price, _ = utils.ToInt(tree["price"])
	t.health, _ = utils.ToInt(tree["maxHealth"])
	t.vision = lookupFloat(tree, "circularVisionRadius")
	t.armor = parseArmor(tree["armor"], true)

	list, _ := tree["guns"].([]any)
	for _, item := range list {
		gunTree, ok := item.(map[string]any)
		if !ok {
			gunTree = map[string]any{}
		}
		t.guns = append(t.guns, parseGun(gunTree))
		if gunRotatesTurret(gunTree) {
			t.rotates = true
		}
	}
	return t
}

func parseGun(tree map[string]any) *gun {
	g := &gun{}
	g.level, _ = utils.ToInt(tree["level"])
	g.price, _ = utils.ToInt(tree["price"])
	g.reload = lookupFloat(tree, "reloadTime")
	_, g.drum = tree["clip"]

	shots, _ := tree["shots"].([]any)
	for _, item := range shots {
		shot, ok := item.(map[string]any)
		if !ok {
			continue
		}
		damage, okD := firstNumber(utils.Lookup(shot, "damage", "armor"))
		pen, okP := firstNumber(shot["piercingPower"], true)
		if !okD || !okP {
			continue
		}
		g.shells = append(g.shells, shell{
			damage:      int(damage),
			penetration: pen,
			gold:        isGoldPrice(shot["price"]),
		})
	}
	return g
}

// parseArmor reads a [front, sides, rear] list. The ok argument lets it
// take the result of utils.Lookup directly.
func parseArmor(val any, ok bool) *armor {
	list, isList := val.([]any)
	if !ok || !isList || len(list) != 3 {
		return nil
	}
	var a armor
	for i, item := range list {
		f, ok := utils.ToFloat(item)
		if !ok {
			return nil
		}
		a[i] = f
	}
	return &a
}

// formatArmor renders each thickness rounded, padded on the left to the
// width of the matching align value so that hull and turret columns line
// up.
func formatArmor(main, align *armor) string {
	parts := make([]string, len(main))
	for i, f := range main {
		s := utils.FormatFloat(math.RoundToEven(f))
		if align != nil {
			width := len(utils.FormatFloat(math.RoundToEven(align[i])))
			if pad := width - len(s); pad > 0 {
				s = strings.Repeat(" ", pad) + s
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

// firstNumber reads a number, or the first number of a space separated
// list such as "240 320".
func firstNumber(val any, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	if s, isString := val.(string); isString {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return 0, false
		}
		val = fields[0]
	}
	return utils.ToFloat(val)
}

func isGoldPrice(val any) bool {
	price, ok := val.(map[string]any)
	if !ok {
		return false
	}
	_, gold := price["gold"]
	return gold
}

// gunRotatesTurret reports whether the gun's yaw limits cover the full
// circle. A gun without limits rotates freely.
func gunRotatesTurret(gun map[string]any) bool {
	limits, ok := gun["turretYawLimits"].([]any)
	if !ok {
		return true
	}
	if len(limits) != 2 {
		return false
	}
	left, okL := utils.ToFloat(limits[0])
	right, okR := utils.ToFloat(limits[1])
	return okL && okR && left == -180 && right == 180
}
