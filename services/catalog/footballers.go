package catalog

// Footballers is the built-in subject set. Hints are deliberately oblique:
// they get handed to the impostor, who must bluff from them alone.
var Footballers = []Footballer{
	{
		ID:       "messi",
		Name:     "Lionel Messi",
		Position: "Atacante",
		Country:  "Argentina",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/28003-1740766555.jpg?lm=1",
		Hints:    []string{"Servilleta", "Rosario", "Crecimiento", "100+ libres"},
	},
	{
		ID:       "ronaldo",
		Name:     "Cristiano Ronaldo",
		Position: "Atacante",
		Country:  "Portugal",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/8198-1748102259.jpg?lm=1",
		Hints:    []string{"Madeira", "Man Utd", "Pentacampeón", "Museo"},
	},
	{
		ID:       "neymar",
		Name:     "Neymar Jr",
		Position: "Atacante",
		Country:  "Brasil",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/68290-1692601435.jpg?lm=1",
		Hints:    []string{"222M", "Al-Hilal", "Operaciones", "Jogo Bonito"},
	},
	{
		ID:       "mbappe",
		Name:     "Kylian Mbappé",
		Position: "Atacante",
		Country:  "Francia",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/342229-1682683695.jpg?lm=1",
		Hints:    []string{"Travas", "Rechazo", "Hat-trick", "38km/h"},
	},
	{
		ID:       "haaland",
		Name:     "Erling Haaland",
		Position: "Atacante",
		Country:  "Noruega",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/418560-1709108116.png?lm=1",
		Hints:    []string{"Dortmund", "6.000kcal", "Vikingo", "Leeds"},
	},
	{
		ID:       "benzema",
		Name:     "Karim Benzema",
		Position: "Atacante",
		Country:  "Francia",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/18922-1702414196.jpg?lm=1",
		Hints:    []string{"Gato", "Francia", "9 goles", "Balón de oro"},
	},
	{
		ID:       "modric",
		Name:     "Luka Modrić",
		Position: "Centrocampista",
		Country:  "Croacia",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/27992-1687776160.jpg?lm=1",
		Hints:    []string{"Histórico", "1.72m", "Balón de oro", "Real Madrid"},
	},
	{
		ID:       "kdb",
		Name:     "Kevin De Bruyne",
		Position: "Centrocampista",
		Country:  "Bélgica",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/88755-1713391485.jpg?lm=1",
		Hints:    []string{"Pep Guardiola", "Genk", "100+ asistencias", "Entrenador"},
	},
	{
		ID:       "kane",
		Name:     "Harry Kane",
		Position: "Atacante",
		Country:  "Inglaterra",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/132098-1700211169.jpg?lm=1",
		Hints:    []string{"Préstamos", "Shamrock", "Bayern", "Maldición"},
	},
	{
		ID:       "salah",
		Name:     "Mohamed Salah",
		Position: "Atacante",
		Country:  "Egipto",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/148455-1727337594.jpg?lm=1",
		Hints:    []string{"Chelsea", "Roma", "35km/h", "Liverpool"},
	},
	{
		ID:       "vinicius",
		Name:     "Vinícius Jr",
		Position: "Atacante",
		Country:  "Brasil",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/371998-1664869583.jpg?lm=1",
		Hints:    []string{"€46M", "Samba", "Racismo", "Joven"},
	},
	{
		ID:       "lewandowski",
		Name:     "Robert Lewandowski",
		Position: "Atacante",
		Country:  "Polonia",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/38253-1701118759.jpg?lm=1",
		Hints:    []string{"Tiktok", "5 goles", "Barcelona", "Reus"},
	},
	{
		ID:       "pedri",
		Name:     "Pedri",
		Position: "Centrocampista",
		Country:  "España",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/683840-1744278342.jpg?lm=1",
		Hints:    []string{"Barcelona", "Abuelo", "Las Palmas", "Iniesta"},
	},
	{
		ID:       "bellingham",
		Name:     "Jude Bellingham",
		Position: "Centrocampista",
		Country:  "Inglaterra",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/581678-1748102891.jpg?lm=1",
		Hints:    []string{"Jobe", "Musiala", "Policía", "€103M"},
	},
	{
		ID:       "vanDijk",
		Name:     "Virgil van Dijk",
		Position: "Defensa",
		Country:  "Países Bajos",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/139208-1702049837.jpg?lm=1",
		Hints:    []string{"Celtic", "£75M", "Liverpool", "Robo Balón de oro"},
	},
	{
		ID:       "courtois",
		Name:     "Thibaut Courtois",
		Position: "Portero",
		Country:  "Bélgica",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/108390-1717280733.jpg?lm=1",
		Hints:    []string{"Roba mujer", "1.99m", "Arquero", "Ibai"},
	},
	{
		ID:       "ronaldinho",
		Name:     "Ronaldinho",
		Position: "Atacante",
		Country:  "Brasil",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/3373-1515762355.jpg?lm=1",
		Hints:    []string{"Dientes", "Magia", "Preso", "Barcelona"},
	},
	{
		ID:       "zidane",
		Name:     "Zinedine Zidane",
		Position: "Centrocampista",
		Country:  "Francia",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/3111-1478769687.jpg?lm=1",
		Hints:    []string{"Cabezazo", "Volea", "Entrenador", "Marsella"},
	},
	{
		ID:       "iniesta",
		Name:     "Andrés Iniesta",
		Position: "Centrocampista",
		Country:  "España",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/7600-1685447692.jpg?lm=1",
		Hints:    []string{"Fuentealbilla", "Stamford Bridge", "Japón", "Mundial 2010"},
	},
	{
		ID:       "buffon",
		Name:     "Gianluigi Buffon",
		Position: "Portero",
		Country:  "Italia",
		ImageURL: "https://img.a.transfermarkt.technology/portrait/big/5023-1663252486.jpg?lm=1",
		Hints:    []string{"Parma", "Longevidad", "Juventus", "2006"},
	},
}
