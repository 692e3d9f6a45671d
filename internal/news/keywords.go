package news

// AI and machine-learning vocabulary: general terms, vendors and models,
// technique names and applications.
var aiKeywords = []string{
	// general
	"ai", "a.i.", "artificial intelligence", "machine learning", "deep learning",
	"neural network", "large language model", "language model", "llm", "llms",
	"generative ai", "genai", "agi", "superintelligence", "chatbot", "ai agent", "agentic",
	// vendors and models
	"openai", "chatgpt", "gpt", "gpt-4", "gpt-4o", "gpt-5", "sora", "dall-e",
	"anthropic", "claude", "google deepmind", "deepmind", "gemini", "bard",
	"meta ai", "llama", "mistral ai", "xai", "grok", "deepseek", "qwen",
	"hugging face", "stability ai", "stable diffusion", "midjourney", "perplexity ai",
	"copilot", "nvidia",
	// techniques
	"transformer model", "diffusion model", "reinforcement learning", "fine-tuning",
	"fine tuning", "training data", "inference", "reasoning model", "multimodal",
	"computer vision", "natural language processing", "nlp", "embeddings",
	// applications
	"self-driving", "autonomous vehicle", "robotaxi", "facial recognition",
	"speech recognition", "deepfake", "ai-generated", "ai-powered",
}

// Other explicit categories. Articles matching any of these are kept out of
// the general category.
var techKeywords = []string{
	"technology", "tech", "software", "hardware", "startup", "smartphone", "iphone",
	"android", "app store", "apple", "microsoft", "google", "amazon web services",
	"meta platforms", "samsung", "gadget", "semiconductor", "microchip", "chipmaker",
	"cybersecurity", "hacker", "hackers", "data breach", "ransomware", "cloud computing",
	"silicon valley", "crypto", "bitcoin", "blockchain", "elon musk", "spacex",
	"internet", "broadband", "5g", "laptop", "computer", "quantum computing",
	"virtual reality", "augmented reality", "vr", "wearable", "robot", "robotics",
	"programming", "developer", "open source", "operating system",
}

var sportsKeywords = []string{
	"sports", "sporting", "football", "soccer", "basketball", "tennis", "olympic",
	"olympics", "nba", "nfl", "nhl", "mlb", "fifa", "uefa", "premier league",
	"champions league", "la liga", "world cup", "tournament", "championship",
	"cricket", "golf", "formula 1", "formula one", "f1", "grand prix", "athlete",
	"quarterback", "goalkeeper", "striker", "stadium", "baseball", "boxing",
	"wimbledon", "super bowl", "rugby", "marathon", "medal", "playoff", "playoffs",
	"match report", "head coach",
}

var businessKeywords = []string{
	"business", "economy", "economic", "finance", "financial", "stock market",
	"stocks", "wall street", "nasdaq", "dow jones", "s&p 500", "inflation",
	"interest rate", "central bank", "federal reserve", "earnings", "revenue",
	"profit", "merger", "acquisition", "ipo", "investor", "investment", "gdp",
	"trade deal", "tariff", "recession", "ceo", "market rally", "shareholder",
	"bankruptcy", "startup funding", "venture capital",
}

var artKeywords = []string{
	"art", "arts", "artist", "artwork", "exhibition", "museum", "gallery",
	"painting", "sculpture", "auction house", "biennale", "curator", "louvre",
	"theatre", "opera", "ballet", "poetry", "literature", "literary",
}

var entertainmentKeywords = []string{
	"entertainment", "celebrity", "celebrities", "movie", "film", "box office",
	"hollywood", "bollywood", "netflix", "streaming series", "tv show", "television series",
	"music", "album", "singer", "concert", "grammy", "oscar", "oscars", "emmy",
	"red carpet", "fashion", "actor", "actress", "pop star", "k-pop", "rapper",
	"disney", "marvel", "trailer", "video game", "gaming", "reality show",
}

// Two-tier disaster/war vocabulary used to pick general world news.
var naturalDisasterKeywords = []string{
	"earthquake", "quake", "aftershock", "tsunami", "hurricane", "typhoon", "cyclone",
	"tornado", "flood", "flooding", "flash flood", "wildfire", "bushfire", "forest fire",
	"volcano", "volcanic", "eruption", "landslide", "mudslide", "avalanche", "drought",
	"heatwave", "heat wave", "blizzard", "storm", "natural disaster", "death toll",
	"evacuation", "evacuate", "state of emergency", "rescue workers", "search and rescue",
	"magnitude",
}

var conflictKeywords = []string{
	"war", "wars", "warfare", "armed conflict", "conflict", "invasion", "airstrike",
	"air strike", "missile", "bombing", "shelling", "ceasefire", "cease-fire", "troops",
	"military", "militant", "militants", "insurgent", "rebel", "rebels", "terror",
	"terrorist", "hostage", "hostages", "refugee", "refugees", "displaced", "humanitarian",
	"famine", "genocide", "massacre", "casualties", "civilians", "siege", "drone attack",
	"crisis", "ukraine", "russia", "gaza", "israel", "hamas", "hezbollah", "west bank",
	"sudan", "darfur", "yemen", "houthi", "syria", "myanmar", "haiti", "congo",
	"sahel", "tigray", "kashmir",
}

// Broader world and international affairs vocabulary.
var worldKeywords = []string{
	"world", "international", "global", "united nations", "un", "nato", "eu",
	"european union", "summit", "diplomat", "diplomacy", "foreign minister",
	"president", "prime minister", "government", "election", "parliament",
	"sanctions", "treaty", "embassy", "border", "migration", "migrant", "migrants",
	"protest", "protesters", "china", "india", "africa", "asia", "europe",
	"middle east", "latin america", "breaking news", "world news",
}
