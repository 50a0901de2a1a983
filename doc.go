/*

Package staticedge serves prebuilt static sites from an asset store, resolving
request paths against a small routing manifest and attaching a cache policy to
every response. The result is an http.Handler that makes multi-page static
sites and single page applications (SPAs) with client-side routing coexist.

A Manifest describes the routing mode, an optional SPA fallback and the
immutable asset patterns; it is produced by the site's build step and loaded
once, see LoadManifest. Assets are fetched through the Store capability
interface: FSStore adapts any fs.FS, such as os.DirFS or an embed.FS, while
package azstore serves from an Azure Blob Storage container.

For each request the Resolver tries an ordered chain of candidate asset paths
and settles on the first hit:

  - the exact path,
  - "<path>/index.html" for "/" and in directory mode,
  - "<path>.html" in flat mode (never for "/"),
  - the SPA fallback, if configured,
  - "/404.html", always served with status 404,
  - and finally a plain "Not Found".

A minimal server looks like this:

	m, err := staticedge.LoadManifest("routes.json")
	if err != nil {
		log.Fatal(err)
	}
	h := staticedge.NewHandler(m, staticedge.NewFSStore(os.DirFS("dist")))
	log.Fatal(http.ListenAndServe(":8080", h))

*/
package staticedge
