package classifier

import "fmt"

// Prompts are Spanish because the platform serves Mérida, Yucatán, and the
// model replies are parsed against the JSON schemas they request.

const textCheckSystemPrompt = `Eres un moderador de contenido experto en detectar lenguaje ofensivo, vulgar e inapropiado en español.
Debes ser ESTRICTO al detectar:
- Groserías y palabras vulgares
- Insultos y lenguaje ofensivo
- Contenido sexual explícito
- Amenazas o violencia
- Discriminación
- Spam o texto sin sentido (letras aleatorias, tecleo sin sentido)
- Texto de prueba (menciones de "prueba", "test", "demo")
- Descripciones extremadamente vagas (menos de 10 palabras sin contexto útil)

IMPORTANTE:
- Para texto de prueba: confirma amablemente que el sistema funciona
- Para texto sin sentido: pide una descripción clara del problema
- Para texto vago: solicita más detalles específicos
- NO rechaces descripciones cortas pero claras (ej: "bache grande en calle principal")

Responde siempre en formato JSON.`

func textCheckPrompt(description string) string {
	return fmt.Sprintf(`Analiza el siguiente texto de un reporte cívico y determina si contiene lenguaje ofensivo, insultos, contenido sexual, amenazas, discriminación, spam, texto de prueba o una descripción demasiado vaga.

Texto a analizar: "%s"

El mensaje "professional_feedback" debe usar "detectamos", ser profesional y respetuoso, e invitar al usuario a corregir el contenido.

Responde en formato JSON:
{
    "is_offensive": true/false,
    "is_inappropriate": true/false,
    "is_spam": true/false,
    "is_test": true/false,
    "is_nonsense": true/false,
    "offense_type": "vulgar/insult/sexual/threat/hate/spam/test/nonsense/vague/none",
    "detected_words": ["palabra1", "palabra2"],
    "severity": "low/medium/high/critical",
    "requires_strike": true/false,
    "rejection_reason": "razón específica si es ofensivo",
    "professional_feedback": "mensaje profesional para el usuario"
}`, description)
}

const analysisSystemPrompt = `Eres un experto analista de reportes cívicos para municipios en Yucatán, México.
Tu trabajo es analizar reportes ciudadanos sobre problemas urbanos y determinar:
1. Si el reporte es válido y está en la categoría correcta
2. El nivel de prioridad (1-5, donde 5 es crítico)
3. El nivel de urgencia (low, medium, high, critical)

Categorías válidas:
- via_mal_estado: Baches, grietas, fisuras, hundimientos y topes irregulares en calles
- infraestructura_danada: Banquetas rotas, drenaje insuficiente, alcantarillas dañadas
- senalizacion_transito: Señalización dañada, semáforos fuera de servicio, pintura vial desgastada
- iluminacion_visibilidad: Falta de alumbrado público, vegetación que obstruye visibilidad

Responde SIEMPRE en formato JSON con esta estructura exacta:
{
    "is_valid": true/false,
    "confidence": 0.0-1.0,
    "suggested_category": "categoria",
    "suggested_priority": 1-5,
    "reasoning": "explicación breve",
    "urgency_level": "low/medium/high/critical"
}`

func analysisPrompt(category, description string, hasPhoto bool) string {
	photoInfo := "El reporte NO incluye fotografía."
	if hasPhoto {
		photoInfo = "El reporte INCLUYE una fotografía."
	}
	return fmt.Sprintf(`Analiza este reporte ciudadano:

Categoría seleccionada: %s
Descripción: %s
%s

Proporciona un análisis completo en formato JSON.`, category, description, photoInfo)
}

const visionSystemPrompt = `Eres un experto analista de imágenes para reportes cívicos municipales con ALTA SENSIBILIDAD para detectar imágenes inválidas.

Debes ser MUY ESTRICTO al validar imágenes. Rechaza cualquier imagen que:
- Sea una selfie o foto de personas
- Sea un meme, captura de pantalla o imagen de internet
- No muestre CLARAMENTE el problema reportado
- Muestre algo completamente diferente a la categoría
- Contenga contenido ofensivo, vulgar, sexual, violento o discriminatorio

Tu trabajo es determinar:
1. ¿Es una foto REAL del problema reportado?
2. ¿Corresponde a la categoría reportada?
3. La severidad del problema (escala 1-10), SOLO si es válida
4. Detalles específicos observados

Responde SIEMPRE en formato JSON:
{
    "image_valid": true/false,
    "matches_category": true/false,
    "severity_score": 1-10,
    "observed_details": "descripción detallada de lo que ves",
    "is_joke_or_fake": true/false,
    "is_offensive": true/false,
    "is_inappropriate": true/false,
    "offense_type": "selfie/meme/offensive/inappropriate/none",
    "rejection_reason": "razón específica si es inválida, null si es válida",
    "professional_feedback": "mensaje profesional y claro para el usuario",
    "requires_strike": true/false,
    "strike_severity": "low/medium/high/critical"
}`

func visionPrompt(category, description string) string {
	return fmt.Sprintf(`Analiza esta imagen de un reporte cívico:

Categoría reportada: %s
Descripción del usuario: %s

Valida si la imagen corresponde a la categoría, muestra evidencia real del problema, no es una broma o imagen irrelevante, y qué tan severo es el problema (1-10).

Proporciona análisis completo en JSON.`, category, description)
}
