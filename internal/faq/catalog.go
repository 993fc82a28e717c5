package faq

import "regexp"

// DefaultCatalog is the static knowledge base, loaded once at startup.
var DefaultCatalog = []Entry{
	{
		ID:       "afiliar",
		Question: "¿Cómo afiliarse a nuestro plan?",
		Answer: `🧾 ¿Cómo afiliarse a nuestro plan?

Podés hacerlo de estas formas:

1) Desde la app:
   • Ingresá a “Mi Plan” → “Afiliarse”.
   • Completá tus datos y elegí el plan.
   • Confirmá la forma de pago.

2) Por WhatsApp:
   • +54 9 11 3636-3342

3) Telefónicamente:
   • +54 11 3636-3342 (9:00 a 18:00)

Tip:
• Tené DNI y datos de contacto a mano.`,
		Keywords: []string{
			"afiliar", "afiliacion", "afiliación", "afiliarse", "alta", "inscribirme",
			"inscripción", "cotizar", "precio", "planes", "me quiero afiliar",
		},
	},
	{
		ID:       "formas_pago",
		Question: "Formas de pago",
		Answer: `💳 Formas de pago (info general)

Según el plan, suelen existir opciones como:
• Débito automático / transferencia
• Pago mensual (según canal habilitado)

Para conocer opciones y valores actualizados:
• Escribí “comercial” y te derivamos al canal correcto.`,
		Keywords: []string{"pago", "pagar", "formas de pago", "debito", "débito", "transferencia", "cuota", "mensual", "factura"},
	},
	{
		ID:       "credencial",
		Question: "Credencial digital",
		Answer: `📇 Credencial digital

• Está en la pestaña “Credencial”.
• Si tarda en cargar:
  - Si ya cargó alguna vez, debería abrir incluso sin internet (modo offline).
  - Si es la primera vez, conectate a internet para que quede guardada.
• Si no aparece tu DNI: cerrá sesión e ingresá nuevamente.`,
		Keywords: []string{"credencial", "carnet", "digital", "qr", "tarjeta", "no carga", "tarda", "offline", "sin conexion", "sin conexión"},
	},
	{
		ID:       "no_puedo_entrar",
		Question: "No puedo ingresar a la app",
		Answer: `🔐 Problemas para ingresar

Probá esto:
1) Cerrá la app y volvé a abrir.
2) Verificá conexión (WiFi / datos).
3) Cerrá sesión y volvé a iniciar.
4) Si persiste, decime “reclamos” y te paso el canal para que lo revisen.`,
		Keywords: []string{"no puedo entrar", "no inicia", "login", "iniciar sesion", "iniciar sesión", "error", "se queda cargando", "crashea", "crash"},
	},
	{
		ID:       "prestadores",
		Question: "¿Dónde veo los prestadores?",
		Answer: `📍 Prestadores / Cartilla

• Entrá a la pestaña “Prestadores”.
• Buscá por nombre, categoría o zona.
• Usá filtros para acotar resultados.

Si no aparece algo que existe:
• Probá sin tildes
• Probá por zona
• Tocá “Limpiar” y buscá de nuevo`,
		Keywords: []string{"prestador", "prestadores", "cartilla", "centros", "servicios", "sucursal", "sucursales", "categoría", "categoria", "zona"},
	},
	{
		ID:       "puntos",
		Question: "Puntos de atención / Farmacias",
		Answer: `🏪 Puntos de atención

• En la pestaña correspondiente vas a ver:
  - Dirección y teléfono
  - Horarios de apertura
  - Botón de ubicación (Maps)

Si necesitás uno en una zona puntual, decime barrio/localidad.`,
		Keywords: []string{"farmacia", "farmacias", "punto", "puntos", "atencion", "atención", "horario", "abierto", "cerrado", "ubicacion", "ubicación"},
	},
	{
		ID:       "turnos",
		Question: "Gestiones / Turnos",
		Answer: `📅 Gestiones / Turnos (general)

Podés gestionarlo por:
• Desde la app (si el módulo está habilitado)
• Por teléfono (si corresponde)
• Por WhatsApp (según disponibilidad)

Decime qué querés gestionar y te indico el canal recomendado.`,
		Keywords: []string{"turno", "turnos", "cita", "citas", "agenda", "reservar", "solicitar", "gestionar", "gestión", "gestion"},
	},
	{
		ID:       "beneficios",
		Question: "Cobertura / Beneficios / Autorizaciones",
		Answer: `🧾 Cobertura / beneficios (info general)

La cobertura depende de tu plan y del tipo de servicio.

En general:
• Algunas gestiones requieren autorización previa.
• En ciertos casos puede existir copago/coseguro.

Decime qué querés realizar (ej: “estudio”, “servicio”, “reintegro”, “autorización”) y te digo cómo se gestiona.`,
		Keywords: []string{
			"cobertura", "beneficio", "beneficios", "cubre", "esta cubierto", "está cubierto",
			"autorizacion", "autorización", "orden", "derivacion", "derivación", "copago", "coseguro",
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(cobertura|beneficio|autorizaci[oó]n|reintegro|coseguro|copago)\b`),
		},
	},
	{
		ID:       "reintegros",
		Question: "Reintegros",
		Answer: `💰 Reintegros (general)

Si tu plan contempla reintegro, normalmente te piden:
• Factura / comprobante
• DNI / Nº de afiliado
• Datos del prestador/servicio

Ojo: no todos los planes tienen reintegro.
Si querés, escribí “mi plan” y lo verificamos con tu DNI.`,
		Keywords: []string{"reintegro", "reintegros", "me reintegran", "devolucion", "devolución", "factura", "comprobante"},
	},
	{
		ID:       "copago_coseguro",
		Question: "Copago / coseguro",
		Answer: `💳 Copago / coseguro

• “Copago/coseguro” = monto que abonás además de la cobertura.
• Puede variar según plan y tipo de servicio.

Si me decís qué querés realizar, te digo cómo confirmarlo.`,
		Keywords: []string{"copago", "coseguro", "cuanto pago", "cuánto pago", "pago extra", "plus"},
	},
	{
		ID:       "reclamos",
		Question: "Reclamos",
		Answer: `📣 Reclamos / soporte

Si tenés un problema con:
• Cobertura/beneficios
• Carga de datos / credencial
• Errores de la app

Decime “reclamos” y te derivo al canal correcto según el horario.`,
		Keywords: []string{"reclamo", "reclamos", "queja", "problema", "soporte", "ayuda", "no funciona", "mal", "error"},
	},
}
