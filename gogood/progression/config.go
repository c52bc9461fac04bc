package progression

// MaxLevel is the terminal level; exp accumulates without bound once reached.
const MaxLevel = 20

type Config struct {
	// Exp required to advance past each level, for levels 1..MaxLevel-1.
	RequiredExp map[int]int64
}

func NewDefaultConfig() *Config {
	return &Config{
		RequiredExp: map[int]int64{
			1:  20,
			2:  30,
			3:  40,
			4:  50,
			5:  60,
			6:  70,
			7:  80,
			8:  90,
			9:  100,
			10: 110,
			11: 120,
			12: 130,
			13: 140,
			14: 150,
			15: 160,
			16: 170,
			17: 180,
			18: 190,
			19: 200,
		},
	}
}
