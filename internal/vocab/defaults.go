package vocab

// defaultSpec is the built-in vocabulary, kept in lockstep with the
// embedded forge_vocab.yaml. It is the fallback when an override file is
// missing or malformed.
func defaultSpec() *Spec {
	return &Spec{
		Version: 1,

		Blocked: []BlockedCategory{
			{
				Category: "minors",
				Patterns: []string{
					`minor`, `underage`, `child(?:ren)?`, `toddler`, `baby`,
					`preteen`, `jailbait`,
				},
			},
			{
				Category: "non_consensual",
				Patterns: []string{
					`non[-\s]?consensual`, `sexual\s+violence`, `rape`,
					`molest(?:ation)?`, `sexual\s+abuse`,
				},
			},
			{
				Category: "snuff",
				Patterns: []string{
					`snuff`, `necrophilia`, `gore\s*porn`,
				},
			},
			{
				Category: "exploitation",
				Patterns: []string{
					`human\s+trafficking`, `trafficking\s+victim`,
					`revenge\s+porn`, `csam`,
				},
			},
		},

		AutoClean: []Replacement{
			{Match: `misty`, Replace: "adult cosplayer (age 21+)"},
			{Match: `jessie`, Replace: "adult character (age 21+)"},
			{Match: `pokemon`, Replace: "fictional cosplay creatures (age 21+)"},
			{Match: `lolita`, Replace: "adult fashion style (safe, 21+)"},
			{Match: `schoolgirl`, Replace: "adult student cosplay (age 21+)"},
		},

		NSFW: []string{
			`nsfw`, `explicit`, `porn(?:ographic)?`, `erotica?`,
			`adult\s+only`, `sex(?:ual)?`,
		},

		TagPatterns: []TagPattern{
			{Tag: "meta", Keywords: []string{
				`masterpiece`, `best\s+quality`, `high\s+quality`, `4k`, `8k`,
				`hdr`, `ultra[-\s]?detailed`, `highly\s+detailed`, `highres`,
				`award[-\s]?winning`, `trending\s+on\s+artstation`,
			}},
			{Tag: "camera", Keywords: []string{
				`portrait`, `close[-\s]?up`, `wide\s+shot`, `full\s+body`,
				`bokeh`, `depth\s+of\s+field`, `fisheye`, `macro`, `telephoto`,
				`35mm`, `85mm`, `low\s+angle`, `overhead`, `aerial\s+view`,
				`dutch\s+angle`,
			}},
			{Tag: "lighting", Keywords: []string{
				`cinematic\s+lighting`, `golden\s+hour`, `backlit`,
				`rim\s+light(?:ing)?`, `soft\s+light(?:ing)?`,
				`studio\s+lighting`, `volumetric\s+light(?:ing)?`,
				`moody\s+lighting`, `neon\s+glow`, `candlelit`, `moonlit`,
				`harsh\s+shadows`, `dramatic\s+lighting`,
			}},
			{Tag: "style", Keywords: []string{
				`anime`, `manga`, `cel[-\s]?shaded`, `chibi`, `kawaii`,
				`photorealistic`, `hyperrealistic`, `realistic`, `photo`,
				`oil\s+painting`, `watercolor`, `acrylic`, `impressionist`,
				`cyberpunk`, `steampunk`, `fantasy`, `sci[-\s]?fi`,
				`concept\s+art`, `pixel\s+art`, `low\s+poly`, `sketch`,
				`line\s+art`,
			}},
			{Tag: "attribute", Keywords: []string{
				`detailed`, `intricate`, `ornate`, `elegant`, `beautiful`,
				`glowing`, `futuristic`, `dystopian`, `ancient`, `weathered`,
				`rusty`, `colorful`, `vibrant`, `dark`, `pale`, `armored`,
				`wearing\s+\w+`, `\w+\s+hair`, `\w+\s+eyes`, `neon`,
				`foggy`, `stormy`, `serene`,
			}},
		},

		StyleKeywords: map[string][]string{
			"realistic": {"realistic", "photorealistic", "photo", "hyperrealistic"},
			"anime":     {"anime", "manga", "cel-shaded", "chibi", "kawaii"},
			"cyberpunk": {"cyberpunk", "neon", "futuristic", "dystopian"},
			"fantasy":   {"fantasy", "magical", "dragon", "elf", "wizard"},
			"painting":  {"oil painting", "watercolor", "acrylic", "impressionist"},
			"scifi":     {"sci-fi", "spaceship", "alien", "robot", "future"},
		},

		KeywordWeights: map[string]float64{
			"cyberpunk":      1.3,
			"samurai":        1.3,
			"neon":           1.2,
			"cinematic":      1.4,
			"ultra-detailed": 1.5,
			"portrait":       1.3,
			"landscape":      1.3,
			"masterpiece":    1.6,
			"best quality":   1.5,
			"4k":             1.4,
			"8k":             1.4,
			"photorealistic": 1.4,
			"hyperrealistic": 1.5,
			"anime":          1.3,
			"fantasy":        1.3,
			"scifi":          1.3,
			"concept art":    1.4,
		},

		NegativeBaseline: []string{
			"blurry", "low quality", "watermark", "text", "signature",
			"username", "artist name", "bad anatomy", "extra limbs",
			"fused fingers", "distorted hands", "deformed face",
			"poorly drawn hands", "poorly drawn face", "mutation", "ugly",
			"disfigured", "bad proportions", "cloned face", "malformed limbs",
			"missing arms", "missing legs", "extra digit", "fewer digits",
			"long neck", "jpeg artifacts", "compression artifacts", "lowres",
			"cropped", "worst quality", "normal quality",
		},

		NegativeByStyle: map[string][]string{
			"realistic": {"cartoon", "painting", "illustration", "3d render"},
			"anime":     {"photorealistic", "photo", "3d render"},
			"painting":  {"photo", "photorealistic", "harsh digital edges"},
		},

		NegativeVideo: []string{
			"flickering", "frame jitter", "temporal artifacts",
			"inconsistent motion",
		},

		RestrictedResources: []string{
			`nsfw`, `adult`, `explicit`, `mature`, `uncensored`,
		},
	}
}
