package facility

import (
	"regexp"
	"sort"
	"strings"
)

var (
	dogPositive     = regexp.MustCompile(`(?i)dogs?\b.*(allowed|permitted|welcome|on lead|on-lead)`)
	dogNegative     = regexp.MustCompile(`(?i)(no dogs|dogs? not permitted|dogs? prohibited)`)
	toiletPositive  = regexp.MustCompile(`(?i)toilets?`)
	toiletNegative  = regexp.MustCompile(`(?i)no toilets?|without toilets?`)
	toiletFlush     = regexp.MustCompile(`(?i)(flush|flushing)`)
	toiletPit       = regexp.MustCompile(`(?i)(pit toilet|pit latrine|long drop|drop toilet)`)
	toiletCompost   = regexp.MustCompile(`(?i)(compost(ing)? toilet|eco toilet)`)
	showerPositive  = regexp.MustCompile(`(?i)showers?`)
	showerNegative  = regexp.MustCompile(`(?i)no showers?|without showers?`)
	bbqPositive     = regexp.MustCompile(`(?i)\b(bbq|barbecue)\b`)
	bbqNegative     = regexp.MustCompile(`(?i)no bbq|no barbecue`)
	firePositive    = regexp.MustCompile(`(?i)(fire pit|firepit|campfire)`)
	fireNegative    = regexp.MustCompile(`(?i)no fires?|no campfires?`)
	picnicPositive  = regexp.MustCompile(`(?i)picnic tables?`)
	picnicNegative  = regexp.MustCompile(`(?i)no picnic tables?`)
	waterPositive   = regexp.MustCompile(`(?i)(drinking water|potable water|water tap)`)
	waterNegative   = regexp.MustCompile(`(?i)no (drinking|potable) water|no water`)
	vehiclePositive = regexp.MustCompile(`(?i)(vehicle access|2wd|4wd|car access|drive-in)`)
	vehicleNegative = regexp.MustCompile(`(?i)(no vehicle access|walk-in only|hike-in only)`)
)

var (
	wildlifeTrigger = regexp.MustCompile(`(?i)\b(wildlife|see|spot|observe|encounter|home to)\b`)
	wildlifePhrase  = regexp.MustCompile(`(?i)(see|spot|observe|encounter|home to)\s+(.*)`)
	wildlifeIgnore  = regexp.MustCompile(`(?i)(url source|http|parks\.vic\.gov\.au)`)
	bulletPrefix    = regexp.MustCompile(`^[-*\x{2022}]+`)
	faunaSeparator  = regexp.MustCompile(`,| and `)
)

// landscapeCategory pairs a terrain tag with the cue words that score it.
type landscapeCategory struct {
	tag  string
	cues []string
}

// landscapeCatalogue is ordered: ties between equally-scoring categories are
// broken by position in this slice.
var landscapeCatalogue = []landscapeCategory{
	{"beach_coast", []string{"ocean", "coast", "beach", "bay", "surf", "dunes", "headland", "foreshore", "clifftop", "tidal"}},
	{"river_creek", []string{"river", "creek", "stream", "riverbank", "banks", "ford", "estuary", "river mouth"}},
	{"lake_wetland", []string{"lake", "lagoon", "wetland", "billabong", "marsh", "swamp", "floodplain"}},
	{"forest", []string{"forest", "bushland", "tall trees", "canopy", "shaded"}},
	{"rainforest", []string{"rainforest", "fern gully", "mossy forest", "closed canopy"}},
	{"grassland_plains", []string{"plains", "grassland", "open country", "pasture", "downs"}},
	{"scrub_heath", []string{"heath", "scrub", "mallee", "shrubland", "low bush"}},
	{"desert_arid", []string{"desert", "arid", "semi-arid", "red sand", "saltbush", "dunes"}},
	{"mountains_alpine", []string{"mountain", "alpine", "high plains", "peaks", "ridge", "snow"}},
	{"valley_gorge", []string{"valley", "gorge", "ravine", "canyon", "gully"}},
	{"rocky_cliffs", []string{"rocky", "boulders", "granite", "outcrop", "escarpment", "cliffs"}},
}

// Extract classifies the rendered text of one page into a facility Profile.
// It is a pure function of its input: the same text always yields the same
// Profile.
func Extract(text string) Profile {
	lines := nonEmptyLines(text)

	dogLines := filterLines(lines, "dog")
	toiletLines := filterLines(lines, "toilet")
	showerLines := filterLines(lines, "shower")
	bbqLines := filterLines(lines, "bbq", "barbecue")
	fireLines := filterLines(lines, "fire")
	picnicLines := filterLines(lines, "picnic")
	waterLines := filterLines(lines, "water")
	vehicleLines := filterLines(lines, "vehicle", "2wd", "4wd")
	accessLines := filterLines(lines, "accessib", "wheelchair")

	toiletsType := ToiletType("")
	for _, line := range toiletLines {
		if toiletFlush.MatchString(line) {
			toiletsType = ToiletFlushing
			break
		}
		if toiletCompost.MatchString(line) {
			toiletsType = ToiletComposting
			break
		}
		if toiletPit.MatchString(line) {
			toiletsType = ToiletPit
			break
		}
	}

	tags := landscapeTags(lines)
	fauna := faunaMentions(lines)

	return Profile{
		SchemaVersion: SchemaVersion,
		Summary: Summary{
			DogFriendly:        classify(dogLines, dogNegative, dogPositive),
			Toilets:            classify(toiletLines, toiletNegative, toiletPositive),
			ToiletsType:        toiletsType,
			Showers:            classify(showerLines, showerNegative, showerPositive),
			BBQ:                classify(bbqLines, bbqNegative, bbqPositive),
			FirePits:           classify(fireLines, fireNegative, firePositive),
			PicnicTables:       classify(picnicLines, picnicNegative, picnicPositive),
			DrinkingWater:      classify(waterLines, waterNegative, waterPositive),
			VehicleAccess:      classify(vehicleLines, vehicleNegative, vehiclePositive),
			AccessibilityNotes: capLines(accessLines, 2),
			DogPolicy:          capLines(dogLines, 2),
		},
		LandscapeTags: tags,
		AnimalsFauna:  fauna,
		Evidence: Evidence{
			Dog:       capLines(dogLines, 3),
			Toilets:   capLines(toiletLines, 3),
			Showers:   capLines(showerLines, 3),
			BBQ:       capLines(bbqLines, 3),
			Fire:      capLines(fireLines, 3),
			Picnic:    capLines(picnicLines, 3),
			Water:     capLines(waterLines, 3),
			Vehicle:   capLines(vehicleLines, 3),
			Access:    capLines(accessLines, 3),
			Landscape: tags,
			Animals:   capLines(fauna, 3),
		},
	}
}

// nonEmptyLines splits text into whitespace-trimmed, non-empty lines.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// filterLines keeps lines containing any of the keywords, case-insensitively.
func filterLines(lines []string, keywords ...string) []string {
	var out []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

// classify scans the keyword-filtered lines in document order. The first line
// matching either pattern decides the flag; the negative pattern is tried
// before the positive on each line. No match leaves the flag Unknown.
func classify(filtered []string, negative, positive *regexp.Regexp) Flag {
	for _, line := range filtered {
		if negative.MatchString(line) {
			return No
		}
		if positive.MatchString(line) {
			return Yes
		}
	}
	return Unknown
}

// landscapeTags counts cue-word hits per category across all lines and
// returns the top three nonzero categories, catalogue order breaking ties.
func landscapeTags(lines []string) []string {
	counts := make([]int, len(landscapeCatalogue))
	for _, line := range lines {
		lower := strings.ToLower(line)
		for i, cat := range landscapeCatalogue {
			for _, cue := range cat.cues {
				if strings.Contains(lower, cue) {
					counts[i]++
				}
			}
		}
	}

	order := make([]int, len(landscapeCatalogue))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	tags := make([]string, 0, 3)
	for _, i := range order {
		if counts[i] == 0 {
			continue
		}
		tags = append(tags, landscapeCatalogue[i].tag)
		if len(tags) == 3 {
			break
		}
	}
	return tags
}

// faunaMentions pulls individual wildlife mentions out of lines that use an
// introduction phrase ("see", "spot", "home to", ...). Mentions are deduped
// case-insensitively, keeping first-seen order and original casing.
func faunaMentions(lines []string) []string {
	var mentions []string
	for _, line := range lines {
		if !wildlifeTrigger.MatchString(line) {
			continue
		}
		if wildlifeIgnore.MatchString(line) {
			continue
		}

		phrase := line
		if m := wildlifePhrase.FindStringSubmatch(line); m != nil {
			phrase = m[2]
		}
		phrase = strings.TrimSpace(bulletPrefix.ReplaceAllString(phrase, ""))
		phrase = strings.TrimRight(phrase, ".")
		if phrase == "" {
			continue
		}

		for _, part := range faunaSeparator.Split(phrase, -1) {
			cleaned := strings.TrimSpace(part)
			if cleaned == "" || strings.EqualFold(cleaned, "wildlife") {
				continue
			}
			mentions = append(mentions, cleaned)
		}
	}

	seen := make(map[string]bool)
	deduped := make([]string, 0, len(mentions))
	for _, mention := range mentions {
		key := strings.ToLower(mention)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, mention)
	}
	return deduped
}

// capLines returns at most n lines, never nil so empty lists marshal as [].
func capLines(lines []string, n int) []string {
	if len(lines) == 0 {
		return []string{}
	}
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
